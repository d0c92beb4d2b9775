package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"user-management/internal/apperr"
	"user-management/internal/models"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// OpenPostgres connects to dsn and fails fast when the server is unreachable
// or rejects the credentials.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	return NewPostgresStore(pool), nil
}

func (s *PostgresStore) Backend() string {
	return postgresDialect.name
}

func (s *PostgresStore) withConn(ctx context.Context, fn func(conn *pgxpool.Conn) error) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return fn(conn)
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		_, err := conn.Exec(ctx, createUsersTableSQL(postgresDialect))
		return err
	})
	if err != nil {
		return apperr.Persistence("create users table", err)
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, fullName, username string) (*models.User, error) {
	if err := checkUserFields(fullName, username); err != nil {
		return nil, err
	}

	query, args := buildInsertQuery(postgresDialect, fullName, username)
	query += " RETURNING id"

	user := models.User{FullName: fullName, Username: username}
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&user.ID)
	})
	if err != nil {
		return nil, apperr.Persistence("add user", err)
	}

	return &user, nil
}

func (s *PostgresStore) Find(ctx context.Context, filter UserFilter) ([]models.User, error) {
	query, args := buildFindQuery(postgresDialect, filter)

	users := []models.User{}
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
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

func (s *PostgresStore) Update(ctx context.Context, sel UpdateSelector, fullName, username string) (int64, error) {
	if err := checkUpdate(sel, fullName, username); err != nil {
		return 0, err
	}

	query, args := buildUpdateQuery(postgresDialect, sel, fullName, username)

	var affected int64
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, apperr.Persistence("update user", err)
	}

	return affected, nil
}

func (s *PostgresStore) Delete(ctx context.Context, sel DeleteSelector) (int64, error) {
	if err := checkDelete(sel); err != nil {
		return 0, err
	}

	query, args := buildDeleteQuery(postgresDialect, sel)

	var affected int64
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, apperr.Persistence("delete user", err)
	}

	return affected, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) GetPool() *pgxpool.Pool {
	return s.pool
}
