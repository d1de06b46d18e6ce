package eventmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating events, event_members and event_updates tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS events (
					id          BIGSERIAL PRIMARY KEY,
					name        VARCHAR(150) NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					club_id     BIGINT NOT NULL REFERENCES clubs(id) ON DELETE RESTRICT,
					start_at    TIMESTAMPTZ NOT NULL,
					end_at      TIMESTAMPTZ NOT NULL,
					status      VARCHAR(16) NOT NULL DEFAULT 'Pending'
						CHECK (status IN ('Pending', 'Accepted', 'Rejected')),
					created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT events_name_key UNIQUE (name),
					CONSTRAINT events_time_check CHECK (start_at < end_at)
				);
				CREATE INDEX IF NOT EXISTS idx_events_club_status ON events(club_id, status);
				CREATE INDEX IF NOT EXISTS idx_events_status_start ON events(status, start_at);
			`); err != nil {
				return fmt.Errorf("failed to create events table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS event_members (
					user_id      BIGINT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
					event_id     BIGINT NOT NULL REFERENCES events(id) ON DELETE RESTRICT,
					status       VARCHAR(16) NOT NULL DEFAULT 'Pending'
						CHECK (status IN ('Pending', 'Accepted', 'Rejected')),
					requested_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					decided_at   TIMESTAMPTZ,
					CONSTRAINT event_members_pkey PRIMARY KEY (user_id, event_id)
				);
				CREATE INDEX IF NOT EXISTS idx_event_members_event_status ON event_members(event_id, status);
			`); err != nil {
				return fmt.Errorf("failed to create event_members table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS event_updates (
					id              BIGSERIAL PRIMARY KEY,
					event_id        BIGINT NOT NULL REFERENCES events(id) ON DELETE RESTRICT,
					old_name        VARCHAR(150) NOT NULL,
					new_name        VARCHAR(150) NOT NULL,
					old_description TEXT NOT NULL,
					new_description TEXT NOT NULL,
					old_start_at    TIMESTAMPTZ NOT NULL,
					new_start_at    TIMESTAMPTZ NOT NULL,
					old_end_at      TIMESTAMPTZ NOT NULL,
					new_end_at      TIMESTAMPTZ NOT NULL,
					updated_by      BIGINT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
					created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_event_updates_event_id ON event_updates(event_id);
			`); err != nil {
				return fmt.Errorf("failed to create event_updates table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Rolling back events tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				DROP TABLE IF EXISTS event_updates;
				DROP TABLE IF EXISTS event_members;
				DROP TABLE IF EXISTS events;
			`); err != nil {
				return fmt.Errorf("failed to drop events tables: %w", err)
			}
			return nil
		})
	})
}
