// Package main is the entry point for the Folio portfolio tracker.
//
// The application follows clean architecture principles:
// - Domain layer is pure (no infrastructure dependencies)
// - Dependency injection via DI container
// - Repository pattern for data access
// - Service layer for business logic
// - HTTP handlers for API endpoints
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foliotracker/folio/internal/config"
	"github.com/foliotracker/folio/internal/di"
	"github.com/foliotracker/folio/internal/reliability"
	"github.com/foliotracker/folio/internal/scheduler"
	"github.com/foliotracker/folio/internal/server"
	"github.com/foliotracker/folio/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting Folio")

	// Wire all dependencies using DI container
	// This initializes databases, repositories, services and background jobs.
	container, err := di.Wire(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	// Both databases must be closed on exit so WAL checkpoints are written.
	defer container.Close()

	// Schedule background jobs: nightly maintenance at 2 AM, and nightly
	// backups at 3 AM when backup storage is configured.
	sched := scheduler.New(log)

	if err := sched.AddJob("0 0 2 * * *", container.MaintenanceJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule maintenance job")
	}

	if container.BackupService != nil {
		backupJob := reliability.NewBackupJob(container.BackupService, log)
		if err := sched.AddJob("0 0 3 * * *", backupJob); err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule backup job")
		}
	}

	sched.Start()
	defer sched.Stop()

	// Initialize HTTP server
	srv := server.New(server.Config{
		Log:     log,
		Cfg:     cfg,
		JWT:     container.JWT,
		FolioDB: container.FolioDB,
		CacheDB: container.CacheDB,
		DevMode: cfg.DevMode,

		Scheduler:      sched,
		MaintenanceJob: container.MaintenanceJob,

		AuthHandlers:       container.AuthHandlers,
		InvestmentHandlers: container.InvestmentHandlers,
		JournalHandlers:    container.JournalHandlers,
		SettingsHandlers:   container.SettingsHandlers,
		AnalyticsHandlers:  container.AnalyticsHandlers,
		DashboardHandlers:  container.DashboardHandlers,
	})

	// Start server in goroutine so shutdown signals can be handled below
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// The HTTP server is given up to 10 seconds to finish in-flight requests.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
