package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/shoresh/familytree-api/internal/config"
	"github.com/shoresh/familytree-api/internal/platform/memory"
	"github.com/shoresh/familytree-api/internal/platform/metrics"
	"github.com/shoresh/familytree-api/internal/platform/postgres"
	"github.com/shoresh/familytree-api/internal/service"
	"github.com/shoresh/familytree-api/internal/service/auth"
	"github.com/shoresh/familytree-api/internal/store"
)

// application holds the shared dependencies and releases them on cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil for the memory driver.
	db     *sql.DB
	people store.PersonStore

	metrics       *metrics.Metrics
	personService service.PersonService
	jwtService    auth.JWTService
	authenticator *auth.EditorAuthenticator
}

// newApplication wires the store, services and metrics for cfg.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
	}

	switch cfg.Database.Driver {
	case "postgres":
		db, err := postgres.Open(ctx, cfg.Database.URL, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.db = db
		app.people = postgres.NewPostgresPersonStore(db, log)
	case "memory":
		log.Warn("using in-memory person store; records are lost on exit")
		app.people = memory.NewPersonStore(log)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	app.metrics = metrics.New(reg)

	var err error
	app.personService, err = service.NewPersonService(app.people, log, service.WithMetrics(app.metrics))
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize person service: %w", err)
	}

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.authenticator = auth.NewEditorAuthenticator(cfg.Auth.EditorPasswordHash, auth.NewBcryptVerifier(), app.jwtService)
	log.Info("application initialized",
		slog.String("driver", cfg.Database.Driver),
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", slog.String("error", err.Error()))
		}
		app.db = nil
	}
}
