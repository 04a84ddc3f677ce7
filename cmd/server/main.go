// Package main implements the entry point for the user API server: a
// CRUD HTTP surface over the users table with request logging, security
// headers, and uniform error envelopes.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/calref/user-api/internal/config"
	"github.com/calref/user-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// run loads configuration, wires dependencies, and starts the HTTP
// server. Split from main so initialization failures return errors
// rather than calling os.Exit from deep in the stack.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("starting server",
		"app_name", cfg.App.Name,
		"version", cfg.App.Version,
		"debug", cfg.App.Debug,
		"api_prefix", cfg.App.APIPrefix,
		"port", cfg.App.Port)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(context.Background())
}
