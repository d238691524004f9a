// Package main implements the entry point for the Hebrew learning API
// server, which schedules spaced repetition vocabulary reviews and
// registers lesson vocabulary as users complete course content.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ivrit-app/ivrit-api/internal/config"
	"github.com/ivrit-app/ivrit-api/internal/platform/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "run database migrations and exit")
	flag.Parse()

	if err := run(*migrateOnly); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run loads configuration, sets up logging and the database, applies
// migrations and starts the HTTP server. Split out of main so that
// every failure path flows through one error return.
func run(migrateOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(logger.Config{
		Level:  cfg.Server.LogLevel,
		Pretty: cfg.Server.PrettyLogs,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		closeDatabase(db, appLogger)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if migrateOnly {
		closeDatabase(db, appLogger)
		appLogger.Info("Migrations applied, exiting")
		os.Exit(0)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		closeDatabase(db, appLogger)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(context.Background())
}
