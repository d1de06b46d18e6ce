package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/Black-And-White-Club/campus-clubs/app"
	"github.com/Black-And-White-Club/campus-clubs/app/eventbus"
	"github.com/Black-And-White-Club/campus-clubs/app/observability"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/metrics"
	"github.com/Black-And-White-Club/campus-clubs/config"
	"github.com/Black-And-White-Club/campus-clubs/integration_tests/containers"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"go.opentelemetry.io/otel/trace/noop"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	AdminEmail    = "Admin@gmail.com"
	AdminPassword = "Admin123"
)

// appTables are truncated between tests. roles is seeded by a migration and
// survives.
var appTables = "event_updates, event_members, events, club_updates, club_members, clubs, refresh_tokens, users"

type TestEnvironment struct {
	Ctx         context.Context
	PgContainer *postgres.PostgresContainer
	DB          *bun.DB
	Bus         *eventbus.Bus
	App         *app.App
	Server      *httptest.Server
	Config      *config.Config
	Data        *TestDataGenerator
	T           *testing.T
}

// NewTestEnvironment starts Postgres, migrates it, and serves the full router
// on an httptest server. It skips under -short.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	pgContainer, pgConnStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		t.Fatalf("failed to setup postgres container: %v", err)
	}

	sqlDB, err := sql.Open("pgx", pgConnStr)
	if err != nil {
		pgContainer.Terminate(ctx)
		t.Fatalf("failed to open sql DB connection: %v", err)
	}
	db := bun.NewDB(sqlDB, pgdialect.New())

	cfg := &config.Config{
		Postgres: config.PostgresConfig{DSN: pgConnStr, AutoMigrate: true},
		HTTP: config.HTTPConfig{
			AllowedOrigins: []string{"http://localhost:4200"},
			RateLimitRPS:   1000,
			RateLimitBurst: 1000,
		},
		JWT: config.JWTConfig{
			Secret:   "integration-secret-integration-secret",
			Issuer:   "campus-clubs-test",
			Audience: "campus-clubs-test",
		},
		Admin:         config.AdminConfig{Email: AdminEmail, Password: AdminPassword},
		Observability: config.ObservabilityConfig{Environment: "test", ServiceName: "campus-clubs-test"},
	}

	obs := observability.Observability{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:  noop.NewTracerProvider().Tracer("integration"),
		Metrics: metrics.NoOpMetrics{},
	}
	bus := eventbus.NewInProcess(obs.Logger)

	application := app.New(ctx, cfg, obs, db, bus)
	if err := application.Prepare(ctx); err != nil {
		application.Close()
		pgContainer.Terminate(ctx)
		t.Fatalf("failed to prepare app: %v", err)
	}

	env := &TestEnvironment{
		Ctx:         ctx,
		PgContainer: pgContainer,
		DB:          db,
		Bus:         bus,
		App:         application,
		Server:      httptest.NewServer(application.Router),
		Config:      cfg,
		Data:        NewTestDataGenerator(),
		T:           t,
	}
	t.Cleanup(env.Close)
	return env
}

// Reset truncates every application table and reseeds the administrator.
func (env *TestEnvironment) Reset() error {
	query := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", appTables)
	if _, err := env.DB.ExecContext(env.Ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return env.App.Prepare(env.Ctx)
}

func (env *TestEnvironment) Close() {
	env.Server.Close()
	if err := env.App.Close(); err != nil {
		env.T.Logf("error closing app: %v", err)
	}
	if err := env.PgContainer.Terminate(env.Ctx); err != nil {
		env.T.Logf("error terminating postgres container: %v", err)
	}
}
