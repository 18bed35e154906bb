package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/phrazzld/shelf/internal/api"
	"github.com/phrazzld/shelf/internal/config"
	"github.com/phrazzld/shelf/internal/console"
	"github.com/phrazzld/shelf/internal/domain"
	"github.com/phrazzld/shelf/internal/events"
	"github.com/phrazzld/shelf/internal/platform/memstore"
	"github.com/phrazzld/shelf/internal/platform/postgres"
	"github.com/phrazzld/shelf/internal/service"
	"github.com/phrazzld/shelf/internal/store"
)

// application holds all the dependencies of a running shelf process.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil for the in-memory driver.
	db *sql.DB

	tx     store.Transactor
	stores store.Stores

	eventEmitter *events.InMemoryEventEmitter

	catalog    service.CatalogService
	membership service.MembershipService
	loans      service.LoanService
}

// newApplication opens the configured store and builds the services on top of it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if err := app.setupStore(ctx); err != nil {
		return nil, err
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewLogHandler(logger))

	var err error
	app.catalog, err = service.NewCatalogService(app.stores.Books, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}

	app.membership, err = service.NewMembershipService(app.stores.Users, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create membership service: %w", err)
	}

	policy := domain.FeePolicy{
		GraceDays: cfg.Loans.GraceDays,
		DailyRate: cfg.Loans.DailyFee,
	}
	app.loans, err = service.NewLoanService(
		app.tx,
		app.stores.Loans,
		policy,
		service.SystemClock,
		app.eventEmitter,
		logger,
	)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create loan service: %w", err)
	}

	logger.Info("Application initialized successfully",
		"driver", cfg.Database.Driver,
		"grace_days", policy.GraceDays,
		"daily_fee", policy.DailyRate)
	return app, nil
}

// setupStore connects the configured backend and, for postgres, applies
// pending migrations when asked to.
func (app *application) setupStore(ctx context.Context) error {
	switch app.config.Database.Driver {
	case config.DriverMemory:
		db := memstore.New(app.logger)
		app.tx = db
		app.stores = db.Stores()
		app.logger.Warn("Using in-memory store; data is lost on exit")
		return nil

	case config.DriverPostgres:
		db, err := setupAppDatabase(ctx, app.config, app.logger)
		if err != nil {
			return err
		}
		app.db = db

		if app.config.Database.MigrateOnStart {
			if err := postgres.Migrate(ctx, db, "up", app.logger); err != nil {
				app.cleanup()
				return fmt.Errorf("failed to apply migrations: %w", err)
			}
		}

		stores := postgres.NewStores(db, app.logger)
		app.tx = postgres.NewTransactor(db, stores)
		app.stores = stores.Store()
		return nil

	default:
		return fmt.Errorf("unsupported database driver %q", app.config.Database.Driver)
	}
}

// newDispatcher builds the console front end writing to out in the configured format.
func (app *application) newDispatcher(out io.Writer) (*console.Dispatcher, error) {
	renderer, err := console.NewRenderer(app.config.Console.Output)
	if err != nil {
		return nil, err
	}
	return console.NewDispatcher(app.catalog, app.membership, app.loans, renderer, out, app.logger)
}

// setupRouter builds the HTTP handler over the application services.
func (app *application) setupRouter() http.Handler {
	return api.NewRouter(api.Services{
		Catalog:    app.catalog,
		Membership: app.membership,
		Loans:      app.loans,
	}, app.logger)
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
		app.db = nil
	}

	app.logger.Debug("Application shutdown completed")
}
