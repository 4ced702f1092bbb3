package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wfedor/telecast/internal/config"
	"github.com/wfedor/telecast/internal/db"
	"github.com/wfedor/telecast/internal/logger"
	"github.com/wfedor/telecast/internal/seed"
	"github.com/wfedor/telecast/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", false)
		logger.Log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Pretty)
	logger.Log.Info().Msg("Telecast starting")

	database, err := db.New(cfg.Database.Path)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	sqlDB, err := database.GetSQLDB()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to get underlying database handle")
	}
	if err := db.RunMigrations(sqlDB, "file://./migrations"); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	repos := db.NewRepositories(database)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := seed.Run(seedCtx, repos); err != nil {
		seedCancel()
		logger.Log.Fatal().Err(err).Msg("Failed to seed database")
	}
	seedCancel()

	srv := server.New(cfg, database)

	// Warm the tuning profile so the first lineup request is already
	// personalized
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 10*time.Second)
	srv.Tuner().Load(loadCtx, false)
	loadCancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("Server error")
		}
	case sig := <-quit:
		logger.Log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}
}
