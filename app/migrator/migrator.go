package migrator

import (
	"context"
	"fmt"
	"log/slog"

	clubmigrations "github.com/Black-And-White-Club/campus-clubs/app/modules/club/infrastructure/repositories/migrations"
	eventmigrations "github.com/Black-And-White-Club/campus-clubs/app/modules/event/infrastructure/repositories/migrations"
	usermigrations "github.com/Black-And-White-Club/campus-clubs/app/modules/user/infrastructure/repositories/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// Module pairs a module name with its registered migrations.
type Module struct {
	Name       string
	Migrations *migrate.Migrations
}

// Modules lists every module in foreign key order: users before clubs,
// clubs before events.
func Modules() []Module {
	return []Module{
		{Name: "user", Migrations: usermigrations.Migrations},
		{Name: "club", Migrations: clubmigrations.Migrations},
		{Name: "event", Migrations: eventmigrations.Migrations},
	}
}

// Set holds one migrator per module. Each module keeps its own bookkeeping
// tables so a rollback only touches that module's last group.
type Set struct {
	order     []string
	migrators map[string]*migrate.Migrator
	logger    *slog.Logger
}

func NewSet(db *bun.DB, logger *slog.Logger) *Set {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Set{migrators: map[string]*migrate.Migrator{}, logger: logger}
	for _, m := range Modules() {
		s.order = append(s.order, m.Name)
		s.migrators[m.Name] = migrate.NewMigrator(db, m.Migrations,
			migrate.WithTableName("bun_migrations_"+m.Name),
			migrate.WithLocksTableName("bun_migration_locks_"+m.Name),
		)
	}
	return s
}

// Names returns the module names in migration order.
func (s *Set) Names() []string {
	return append([]string(nil), s.order...)
}

// Get returns the migrator of one module.
func (s *Set) Get(name string) (*migrate.Migrator, error) {
	m, ok := s.migrators[name]
	if !ok {
		return nil, fmt.Errorf("invalid module name: %s", name)
	}
	return m, nil
}

// Init creates the bookkeeping tables of every module.
func (s *Set) Init(ctx context.Context) error {
	for _, name := range s.order {
		if err := s.migrators[name].Init(ctx); err != nil {
			return fmt.Errorf("failed to initialize %s migrations: %w", name, err)
		}
	}
	return nil
}

// Migrate applies pending migrations module by module in order.
func (s *Set) Migrate(ctx context.Context) error {
	if err := s.Init(ctx); err != nil {
		return err
	}
	for _, name := range s.order {
		if err := s.migrate(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Set) migrate(ctx context.Context, name string) error {
	m := s.migrators[name]
	if err := m.Lock(ctx); err != nil {
		return fmt.Errorf("failed to lock %s migrations: %w", name, err)
	}
	defer m.Unlock(ctx) //nolint:errcheck

	group, err := m.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to run %s migrations: %w", name, err)
	}
	if group.IsZero() {
		s.logger.InfoContext(ctx, "No new migrations", "module", name)
	} else {
		s.logger.InfoContext(ctx, "Migrated module", "module", name, "group", group.String())
	}
	return nil
}

// Rollback undoes the last group of every module in reverse order.
func (s *Set) Rollback(ctx context.Context) error {
	for i := len(s.order) - 1; i >= 0; i-- {
		name := s.order[i]
		group, err := s.migrators[name].Rollback(ctx)
		if err != nil {
			return fmt.Errorf("failed to roll back %s migrations: %w", name, err)
		}
		if group.IsZero() {
			s.logger.InfoContext(ctx, "No groups to roll back", "module", name)
		} else {
			s.logger.InfoContext(ctx, "Rolled back module", "module", name, "group", group.String())
		}
	}
	return nil
}
