package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Black-And-White-Club/campus-clubs/app/eventbus"
	"github.com/Black-And-White-Club/campus-clubs/app/migrator"
	"github.com/Black-And-White-Club/campus-clubs/app/modules/auth"
	"github.com/Black-And-White-Club/campus-clubs/app/modules/club"
	"github.com/Black-And-White-Club/campus-clubs/app/modules/dashboard"
	"github.com/Black-And-White-Club/campus-clubs/app/modules/event"
	eventdb "github.com/Black-And-White-Club/campus-clubs/app/modules/event/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/campus-clubs/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/observability"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/timeparse"
	"github.com/Black-And-White-Club/campus-clubs/config"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bun.DB
	EventBus      *eventbus.Bus
	Migrations    *migrator.Set

	AuthModule      *auth.Module
	ClubModule      *club.Module
	EventModule     *event.Module
	DashboardModule *dashboard.Module

	Router chi.Router
}

// OpenDB connects to Postgres through pgdriver.
func OpenDB(dsn string) *bun.DB {
	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(pgdb, pgdialect.New())
}

// New builds every module around db and bus. The caller owns both.
func New(ctx context.Context, cfg *config.Config, obs observability.Observability, db *bun.DB, bus *eventbus.Bus) *App {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing application", attr.String("environment", cfg.Observability.Environment))

	users := userdb.NewRepository(db)
	// The event repository is shared: the club module uses it to cascade
	// deletes and kicks into event rows.
	events := eventdb.NewRepository(db)

	app := &App{
		Config:        cfg,
		Observability: obs,
		DB:            db,
		EventBus:      bus,
		Migrations:    migrator.NewSet(db, logger),
	}
	app.AuthModule = auth.NewModule(ctx, cfg, obs, users, db)
	app.ClubModule = club.NewClubModule(ctx, obs, db, users, events, bus)
	app.EventModule = event.NewEventModule(ctx, obs, db, events, app.ClubModule.Repo, users, bus, timeparse.New(time.UTC, nil))
	app.DashboardModule = dashboard.NewDashboardModule(ctx, obs, db)
	app.Router = app.newRouter()
	return app
}

// Initialize opens the database and event bus named by cfg and builds the app.
func Initialize(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	db := OpenDB(cfg.Postgres.DSN)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	bus, err := eventbus.New(cfg.NATS.URL, obs.Logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	return New(ctx, cfg, obs, db, bus), nil
}

// Prepare runs migrations when enabled and seeds the administrator.
func (app *App) Prepare(ctx context.Context) error {
	if app.Config.Postgres.AutoMigrate {
		if err := app.Migrations.Migrate(ctx); err != nil {
			return err
		}
	}
	if err := app.AuthModule.EnsureAdmin(ctx); err != nil {
		return fmt.Errorf("failed to seed administrator: %w", err)
	}
	return nil
}

// Close releases the event bus and the database.
func (app *App) Close() error {
	var firstErr error
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			firstErr = err
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close database: %w", err)
		}
	}
	return firstErr
}
