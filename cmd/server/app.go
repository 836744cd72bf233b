package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/nkhandel/taskpilot-api/internal/config"
	"github.com/nkhandel/taskpilot-api/internal/derivation"
	"github.com/nkhandel/taskpilot-api/internal/platform/gemini"
	"github.com/nkhandel/taskpilot-api/internal/platform/postgres"
	"github.com/nkhandel/taskpilot-api/internal/service/auth"
	"github.com/nkhandel/taskpilot-api/internal/store"
	"github.com/nkhandel/taskpilot-api/internal/sweeper"
	"golang.org/x/crypto/bcrypt"
)

// application holds the assembled dependencies of the server process.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	deriver          derivation.Deriver
	sweeper          *sweeper.Sweeper
}

// newApplication wires every component together: database connection,
// stores, auth services, the Gemini deriver, and the deadline sweeper.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, logger); err != nil {
		closeDatabase(db, logger)
		return nil, err
	}

	userStore := postgres.NewPostgresUserStore(db, bcrypt.DefaultCost, logger)
	taskStore := postgres.NewPostgresTaskStore(db, logger)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		closeDatabase(db, logger)
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	deriver, err := gemini.NewGeminiDeriver(ctx, logger, cfg.LLM)
	if err != nil {
		closeDatabase(db, logger)
		return nil, fmt.Errorf("failed to create task deriver: %w", err)
	}

	sweep := sweeper.New(taskStore, sweeper.Config{
		Interval: time.Duration(cfg.Sweeper.IntervalSeconds) * time.Second,
	}, logger)

	return &application{
		config:           cfg,
		logger:           logger,
		db:               db,
		userStore:        userStore,
		taskStore:        taskStore,
		jwtService:       jwtService,
		passwordVerifier: auth.NewBcryptVerifier(),
		deriver:          deriver,
		sweeper:          sweep,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.sweeper != nil {
		app.sweeper.Stop()
	}
	closeDatabase(app.db, app.logger)
}

// closeDatabase closes the database connection, logging any error.
func closeDatabase(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("failed to close database connection", "error", err)
	}
}
