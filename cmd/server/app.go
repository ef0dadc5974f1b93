package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/tasktrail/tasktrail-api/internal/config"
	"github.com/tasktrail/tasktrail-api/internal/platform/postgres"
	"github.com/tasktrail/tasktrail-api/internal/service"
	"github.com/tasktrail/tasktrail-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	taskStore   store.TaskStore
	taskService service.TaskService
}

// newApplication establishes the database connection, runs pending
// migrations, and wires the store and service dependencies.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupDatabase(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		closeDatabase(db, logger)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	taskStore := postgres.NewPostgresTaskStore(db, logger)

	taskService, err := service.NewTaskService(taskStore, db, logger)
	if err != nil {
		closeDatabase(db, logger)
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		taskStore:   taskStore,
		taskService: taskService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	closeDatabase(app.db, app.logger)
}

func closeDatabase(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("failed to close database connection", "error", err)
		return
	}
	logger.Info("Database connection closed")
}
