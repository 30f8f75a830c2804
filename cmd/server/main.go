// Package main implements the entry point for the liuyao API server,
// which casts and interprets six-line divination readings and archives
// them for authenticated users.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/yaolab/liuyao-api/internal/config"
	"github.com/yaolab/liuyao-api/internal/platform/logger"
)

func main() {
	var (
		migrateCmd    string
		migrationName string
		verbose       bool
	)
	flag.StringVar(&migrateCmd, "migrate", "",
		"run a migration command (up, down, reset, status, version, create) and exit")
	flag.StringVar(&migrationName, "name", "",
		"name for a new migration file, used with -migrate create")
	flag.BoolVar(&verbose, "verbose", false,
		"log extra detail during migration commands")
	flag.Parse()

	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Migration commands run against the configured database and exit
	// without starting the server.
	if migrateCmd != "" {
		if err := handleMigrations(cfg, migrateCmd, migrationName, verbose); err != nil {
			appLogger.Error("migration failed", "command", migrateCmd, "error", err)
			os.Exit(1)
		}
		return
	}

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to set up database", "error", err)
		os.Exit(1)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		appLogger.Error("failed to initialize application", "error", err)
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("error closing database connection", "error", closeErr)
		}
		os.Exit(1)
	}

	if err := app.Run(context.Background()); err != nil {
		appLogger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up structured logging.
// Returns the loaded config, the configured logger and any initialization error.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	// Secrets are logged as presence flags only.
	if cfg.Database.URL != "" {
		slog.Debug("Database configuration", "url_present", true)
	}
	if cfg.Auth.JWTSecret != "" {
		slog.Debug("Auth configuration", "jwt_secret_present", true)
	}

	return cfg, appLogger, nil
}
