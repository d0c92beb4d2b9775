// @title           User Management API
// @version         1.0
// @description     Create, list, update and delete users.
// @host            localhost:8080
// @schemes         http
// @BasePath        /
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"user-management/internal/api"
	"user-management/internal/config"
	"user-management/internal/database"
	"user-management/internal/logging"
	"user-management/internal/storage"

	_ "user-management/docs"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run owns every resource so deferred cleanup happens before main exits.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, logCloser := logging.New(cfg.Log.Level, cfg.Log.File)
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	users, err := database.Open(ctx, cfg.DB, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return err
	}
	defer users.Close()
	logger.Info("database ready", "backend", users.Backend())

	static, err := storage.NewLocalStorage(cfg.Static.Path)
	if err != nil {
		logger.Error("failed to initialise static files", "path", cfg.Static.Path, "error", err)
		return err
	}

	server := api.NewServer(cfg, users, static, logger)

	srv := &http.Server{
		Addr:              cfg.AppHost,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("starting server", "addr", cfg.AppHost)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "error", err)
		return err
	}
	return nil
}
