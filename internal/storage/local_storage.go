package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var ErrFileNotFound = errors.New("file not found")

// LocalStorage serves read-only front-end assets from a directory.
type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, err
	}
	return &LocalStorage{basePath: basePath}, nil
}

// resolve maps a request path onto basePath. Anything that would escape the
// directory resolves to "" and is reported as not found.
func (ls *LocalStorage) resolve(name string) string {
	clean := filepath.Clean("/" + strings.TrimPrefix(name, "/"))
	if clean == "/" {
		clean = "/index.html"
	}
	full := filepath.Join(ls.basePath, filepath.FromSlash(clean))

	rel, err := filepath.Rel(ls.basePath, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return full
}

type File struct {
	io.ReadSeekCloser
	Name    string
	ModTime time.Time
}

func (ls *LocalStorage) Get(name string) (*File, error) {
	filePath := ls.resolve(name)
	if filePath == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrFileNotFound)
	}

	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrFileNotFound)
		}
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("%s: %w", name, ErrFileNotFound)
	}

	return &File{ReadSeekCloser: file, Name: info.Name(), ModTime: info.ModTime()}, nil
}
