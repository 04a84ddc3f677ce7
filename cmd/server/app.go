package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/calref/user-api/internal/config"
	"github.com/calref/user-api/internal/platform/postgres"
	"github.com/calref/user-api/internal/service"
	"github.com/calref/user-api/internal/service/auth"
	"github.com/calref/user-api/internal/store"
)

// application holds the shared application dependencies so that wiring
// and cleanup live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore   store.UserStore
	userService service.UserService

	// tokenService is constructed from AuthConfig but not mounted on any
	// route; no endpoint requires a token today.
	tokenService     auth.TokenService
	passwordVerifier auth.PasswordVerifier
}

// newApplication creates an application instance with all dependencies
// initialized. Configuration, logger, and database connection must be
// established by the caller first.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	slowQueries := postgres.NewSlowQueryLogger(
		time.Duration(cfg.Database.SlowQueryThresholdMS) * time.Millisecond)
	app.userStore = postgres.NewUserStore(db, bcrypt.DefaultCost, slowQueries)

	transactor := store.NewDBTransactor(db)
	app.userService = service.NewUserService(app.userStore, transactor, logger)

	var err error
	app.tokenService, err = auth.NewJWTTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	app.passwordVerifier = auth.NewBcryptVerifier()

	logger.Info("application initialized")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources on shutdown.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
