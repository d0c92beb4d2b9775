package api

import (
	"log/slog"

	"github.com/go-playground/validator/v10"

	"user-management/internal/config"
	"user-management/internal/database"
	"user-management/internal/storage"
)

type Server struct {
	config   *config.Config
	users    database.UserRepository
	static   *storage.LocalStorage
	log      *slog.Logger
	validate *validator.Validate
}

func NewServer(cfg *config.Config, users database.UserRepository, static *storage.LocalStorage, log *slog.Logger) *Server {
	return &Server{
		config:   cfg,
		users:    users,
		static:   static,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}
