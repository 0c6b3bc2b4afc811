package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timmy/dogo/internal/api"
	"github.com/timmy/dogo/internal/api/handler"
	"github.com/timmy/dogo/internal/app"
	"github.com/timmy/dogo/internal/config"
	"github.com/timmy/dogo/internal/logger"
	"github.com/timmy/dogo/internal/service"
)

func main() {
	appLogger := logger.NewDefault()
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// CONFIG_PATH overrides the config search path in deployments
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	fetcher, err := app.NewFetcher(&cfg.Fetcher)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize fetcher")
	}

	ctx := context.Background()

	var archive *service.ArchiveService
	if cfg.Archive.Enabled {
		var closeDB func() error
		archive, closeDB, err = app.NewArchive(ctx, cfg, appLogger)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize archive")
		}
		defer func() {
			if err := closeDB(); err != nil {
				appLogger.WithError(err).Warn("Failed to close database")
			}
		}()
	}

	router := api.SetupRouter(fetcher, archive, handler.NewEventHub(), &cfg.Server, appLogger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithFields(logger.Fields{
			"port":              cfg.Server.Port,
			"mode":              cfg.Server.Mode,
			logger.FieldSource:  fetcher.Source().GetSourceID(),
			"archive_enabled":   cfg.Archive.Enabled,
			"fetch_concurrency": cfg.Fetcher.Concurrency,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Event streams stay open until their clients leave, so shutdown is bounded.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
