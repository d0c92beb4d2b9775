package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"user-management/internal/storage"
)

func (s *Server) StaticFileHandler(w http.ResponseWriter, r *http.Request) {
	file, err := s.static.Get(chi.URLParam(r, "*"))
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			http.NotFound(w, r)
			return
		}
		s.log.ErrorContext(r.Context(), "failed to open static file", "path", r.URL.Path, "error", err)
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}
	defer file.Close()

	http.ServeContent(w, r, file.Name, file.ModTime, file)
}
