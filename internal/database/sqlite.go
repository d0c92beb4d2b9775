package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"user-management/internal/apperr"
	"user-management/internal/models"
)

const memoryPath = ":memory:"

// SQLiteStore is the embedded backend used in test mode. It keeps a single
// connection open so an in-memory database survives between requests.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	db.SetMaxOpenConns(1)
	return &SQLiteStore{db: db}
}

// OpenSQLite opens (creating when needed) the database file at path.
// ":memory:" and "file:" URIs are passed through unchanged.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		path = "test_database.db"
	}

	dsn := path
	if path != memoryPath && !strings.HasPrefix(path, "file:") {
		if err := ensureDirForSQLite(path); err != nil {
			return nil, err
		}
		dsn = path + "?_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	store := NewSQLiteStore(db)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	return store, nil
}

func ensureDirForSQLite(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("sqlite: create dir %s: %w", dir, err)
	}
	return nil
}

func (s *SQLiteStore) Backend() string {
	return sqliteDialect.name
}

func (s *SQLiteStore) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(conn)
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, createUsersTableSQL(sqliteDialect))
		return err
	})
	if err != nil {
		return apperr.Persistence("create users table", err)
	}
	return nil
}

func (s *SQLiteStore) Insert(ctx context.Context, fullName, username string) (*models.User, error) {
	if err := checkUserFields(fullName, username); err != nil {
		return nil, err
	}

	query, args := buildInsertQuery(sqliteDialect, fullName, username)

	user := models.User{FullName: fullName, Username: username}
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		user.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return nil, apperr.Persistence("add user", err)
	}

	return &user, nil
}

func (s *SQLiteStore) Find(ctx context.Context, filter UserFilter) ([]models.User, error) {
	query, args := buildFindQuery(sqliteDialect, filter)

	users := []models.User{}
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var user models.User
			if err := rows.Scan(&user.ID, &user.FullName, &user.Username); err != nil {
				return err
			}
			users = append(users, user)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, apperr.Persistence("retrieve users", err)
	}

	return users, nil
}

func (s *SQLiteStore) Update(ctx context.Context, sel UpdateSelector, fullName, username string) (int64, error) {
	if err := checkUpdate(sel, fullName, username); err != nil {
		return 0, err
	}

	query, args := buildUpdateQuery(sqliteDialect, sel, fullName, username)

	affected, err := s.exec(ctx, query, args)
	if err != nil {
		return 0, apperr.Persistence("update user", err)
	}
	return affected, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, sel DeleteSelector) (int64, error) {
	if err := checkDelete(sel); err != nil {
		return 0, err
	}

	query, args := buildDeleteQuery(sqliteDialect, sel)

	affected, err := s.exec(ctx, query, args)
	if err != nil {
		return 0, apperr.Persistence("delete user", err)
	}
	return affected, nil
}

func (s *SQLiteStore) exec(ctx context.Context, query string, args []any) (int64, error) {
	var affected int64
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	return affected, err
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() {
	_ = s.db.Close()
}
