package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	"github.com/yaolab/liuyao-api/internal/config"
)

// handleMigrations executes a database migration command. It is called from
// main() when the -migrate flag is set. Returns an error if the command is
// unknown or the migration fails.
func handleMigrations(
	cfg *config.Config,
	migrateCmd string,
	migrationName string,
	verbose bool,
) error {
	slog.Info("Executing migrations",
		"command", migrateCmd,
		"verbose", verbose)

	// The create command carries the new migration's name as an argument.
	var args []string
	if migrateCmd == "create" && migrationName != "" {
		args = append(args, migrationName)
	}

	return executeMigration(cfg, migrateCmd, verbose, args...)
}

// executeMigration executes database migrations using goose
func executeMigration(cfg *config.Config, command string, verbose bool, args ...string) error {
	// Use a correlation ID for all migration logs to allow tracing the
	// entire operation
	correlationID := uuid.New().String()
	migrationLogger := slog.Default().With(
		"correlation_id", correlationID,
		"component", "migrations",
		"command", command,
	)

	startTime := time.Now()
	migrationLogger.Info("Starting migration operation",
		"operation", fmt.Sprintf("goose %s", command),
		"verbose", verbose)

	// Route goose's own log output through slog
	goose.SetLogger(&slogGooseLogger{})

	dbURL := cfg.Database.URL
	if dbURL == "" {
		migrationLogger.Error("Database URL is empty",
			"resolution", "check LIUYAO_DATABASE_URL or the config file")
		return fmt.Errorf("database URL is empty: check your configuration")
	}

	// Always log the database URL masked for safe diagnostics
	migrationLogger.Info("Using database URL", "url", maskDatabaseURL(dbURL))

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		migrationLogger.Error("Failed to open database connection",
			"error", err,
			"error_type", fmt.Sprintf("%T", err))
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			migrationLogger.Error("Error closing database connection", "error", closeErr)
		}
		migrationLogger.Info("Migration operation completed",
			"operation", fmt.Sprintf("goose %s", command),
			"duration_ms", time.Since(startTime).Milliseconds())
	}()

	// Migrations run one at a time; keep the pool small.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		migrationLogger.Error("Database ping failed",
			"error", err,
			"error_type", fmt.Sprintf("%T", err))
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf(
				"database ping timed out after 5s: %w (check network connectivity and server load)",
				err,
			)
		}
		return fmt.Errorf(
			"failed to connect to database: %w (check connection string, credentials, and database availability)",
			err,
		)
	}

	migrationsDirPath, err := findMigrationsDir()
	if err != nil {
		migrationLogger.Error("Failed to locate migrations directory", "error", err)
		return fmt.Errorf("failed to locate migrations directory: %w", err)
	}
	migrationLogger.Info("Using migrations directory", "path", migrationsDirPath)

	if err := goose.SetDialect("postgres"); err != nil {
		migrationLogger.Error("Failed to set dialect", "error", err)
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	goose.SetTableName(migrationTableName)

	// Log the current schema version before executing the command
	currentVersion := queryMigrationVersion(db, migrationLogger)
	migrationLogger.Info("Current database migration version", "version", currentVersion)

	commandStartTime := time.Now()

	switch command {
	case "up":
		migrationLogger.Info("Applying pending migrations")
		err = goose.Up(db, migrationsDirPath)
	case "down":
		migrationLogger.Info("Rolling back one migration version")
		err = goose.Down(db, migrationsDirPath)
	case "reset":
		migrationLogger.Info("Resetting all migrations (roll back to zero)")
		err = goose.Reset(db, migrationsDirPath)
	case "status":
		migrationLogger.Info("Checking migration status")
		err = goose.Status(db, migrationsDirPath)
	case "version":
		migrationLogger.Info("Retrieving current migration version")
		err = goose.Version(db, migrationsDirPath)
	case "create":
		if len(args) == 0 || args[0] == "" {
			migrationLogger.Error("Migration create command requires a name parameter")
			return fmt.Errorf("migration name is required for 'create' command")
		}
		migrationLogger.Info("Creating new migration",
			"name", args[0],
			"type", "sql",
			"directory", migrationsDirPath)
		err = goose.Create(db, migrationsDirPath, args[0], "sql")
	default:
		migrationLogger.Error("Unknown migration command",
			"command", command,
			"valid_commands", []string{"up", "down", "reset", "status", "version", "create"})
		return fmt.Errorf(
			"unknown migration command: %s (expected up, down, reset, status, version, or create)",
			command,
		)
	}

	commandDuration := time.Since(commandStartTime)
	if err != nil {
		migrationLogger.Error("Migration command failed",
			"command", command,
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
			"duration_ms", commandDuration.Milliseconds())
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	migrationLogger.Info("Migration command executed successfully",
		"command", command,
		"duration_ms", commandDuration.Milliseconds())

	if command == "up" || command == "down" || command == "reset" {
		newVersion := queryMigrationVersion(db, migrationLogger)
		if newVersion != currentVersion {
			migrationLogger.Info("Database schema version changed",
				"previous_version", currentVersion,
				"new_version", newVersion)
		} else {
			migrationLogger.Info("Database schema version unchanged", "version", newVersion)
		}
	}

	return nil
}

// queryMigrationVersion reads the highest applied version from the migration
// table. Returns "0" for a clean database.
func queryMigrationVersion(db *sql.DB, logger *slog.Logger) string {
	var version string
	err := db.QueryRow(
		fmt.Sprintf("SELECT version_id FROM %s ORDER BY version_id DESC LIMIT 1", migrationTableName),
	).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "0"
		}
		logger.Warn("Failed to retrieve current migration version",
			"error", err,
			"error_type", fmt.Sprintf("%T", err))
		return "unknown"
	}
	return version
}
