// Package main implements the entry point for the TaskTrail API server,
// a task-tracking backend exposing CRUD operations over HTTP.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/tasktrail/tasktrail-api/internal/config"
	"github.com/tasktrail/tasktrail-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run loads configuration, wires dependencies, and starts the HTTP server.
// It blocks until the server shuts down.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	router := app.setupRouter()
	return app.startHTTPServer(context.Background(), router)
}
