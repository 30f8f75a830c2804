package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yaolab/liuyao-api/internal/config"
	"github.com/yaolab/liuyao-api/internal/domain/liuyao"
	"github.com/yaolab/liuyao-api/internal/events"
	"github.com/yaolab/liuyao-api/internal/platform/postgres"
	"github.com/yaolab/liuyao-api/internal/service"
	"github.com/yaolab/liuyao-api/internal/service/auth"
	"github.com/yaolab/liuyao-api/internal/store"
	"github.com/yaolab/liuyao-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore    store.UserStore
	readingStore store.ReadingStore
	taskStore    task.TaskStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	engine           liuyao.Service
	castingService   service.CastingService
	readingService   service.ReadingService
	userService      service.UserService

	// Event system
	eventEmitter events.EventEmitter

	// Task handling
	taskRunner *task.TaskRunner
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password verifier
	app.passwordVerifier = auth.NewBcryptVerifier()

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, bcrypt.DefaultCost)
	app.readingStore = postgres.NewPostgresReadingStore(db, logger)
	taskStore := postgres.NewPostgresTaskStore(db)

	// Initialize the divination engine with the configured parameters.
	// Zero-valued settings keep the engine defaults.
	app.engine, err = liuyao.NewService(liuyao.NewParams(liuyao.ParamsConfig{
		MaxRelationItems:     cfg.Engine.MaxRelationItems,
		MaxTimingPredictions: cfg.Engine.MaxTimingPredictions,
		DayHorizon:           cfg.Engine.DayHorizon,
		MonthHorizon:         cfg.Engine.MonthHorizon,
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create divination engine: %w", err)
	}

	// The task store needs the executor resolver before the runner starts:
	// recovery rebuilds persisted archive tasks through it.
	archiveFactory := task.NewReadingArchiveTaskFactory(app.readingStore, logger)
	taskStore.SetExecutorResolver(archiveFactory)
	app.taskStore = taskStore

	// Initialize task runner (recovers unfinished tasks and starts workers)
	app.taskRunner, err = setupTaskRunner(app)
	if err != nil {
		return nil, fmt.Errorf("failed to setup task runner: %w", err)
	}

	// Initialize event emitter
	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	// Create and register the event handler that turns archive request
	// events into queued tasks.
	archiveHandler := task.NewTaskFactoryEventHandler(archiveFactory, app.taskRunner, logger)
	if emitter, ok := app.eventEmitter.(*events.InMemoryEventEmitter); ok {
		emitter.RegisterHandler(archiveHandler)
	} else {
		return nil, fmt.Errorf("unexpected event emitter type, cannot register task handler")
	}

	// Initialize casting service
	app.castingService = service.NewCastingService(app.engine, logger)

	// Initialize reading service
	app.readingService, err = service.NewReadingService(
		app.castingService,
		app.readingStore,
		app.eventEmitter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reading service: %w", err)
	}

	// Initialize user service (password change and account deletion run in
	// transactions against the raw connection)
	app.userService = service.NewUserService(db, app.userStore, app.passwordVerifier, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	// Set up router using the application dependencies
	router := app.setupRouter()

	// Start the HTTP server
	err := app.startHTTPServer(ctx, router)
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// setupTaskRunner initializes and starts the background task processor.
// It uses the application struct to access required dependencies.
func setupTaskRunner(app *application) (*task.TaskRunner, error) {
	taskRunner := task.NewTaskRunner(app.taskStore, task.TaskRunnerConfig{
		QueueSize:    app.config.Task.QueueSize,
		WorkerCount:  app.config.Task.WorkerCount,
		StuckTaskAge: time.Duration(app.config.Task.StuckTaskAgeMinutes) * time.Minute,
	}, app.logger)

	// Start the task runner
	if err := taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}

	return taskRunner, nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Stop task runner
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	// Close database connection
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
