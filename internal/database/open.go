package database

import (
	"context"
	"log/slog"

	"user-management/internal/config"
)

// Open picks the backend once, from cfg.TestMode, and returns it with the users
// table in place. The choice is never revisited per call.
func Open(ctx context.Context, cfg config.DBConfig, log *slog.Logger) (UserRepository, error) {
	var (
		repo UserRepository
		err  error
	)

	if cfg.TestMode {
		log.Info("using embedded test database", "path", cfg.SQLitePath)
		repo, err = OpenSQLite(ctx, cfg.SQLitePath)
	} else {
		log.Info("using postgres database")
		repo, err = OpenPostgres(ctx, cfg.Source)
	}
	if err != nil {
		return nil, err
	}

	repo = Instrument(repo)

	if err := repo.EnsureSchema(ctx); err != nil {
		repo.Close()
		return nil, err
	}

	return repo, nil
}
