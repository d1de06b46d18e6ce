package clubmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating clubs, club_members and club_updates tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS clubs (
					id          BIGSERIAL PRIMARY KEY,
					name        VARCHAR(100) NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					leader_id   BIGINT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
					status      VARCHAR(16) NOT NULL DEFAULT 'Pending'
						CHECK (status IN ('Pending', 'Accepted', 'Rejected')),
					created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT clubs_name_key UNIQUE (name),
					CONSTRAINT clubs_leader_id_key UNIQUE (leader_id)
				);
				CREATE INDEX IF NOT EXISTS idx_clubs_status ON clubs(status);
			`); err != nil {
				return fmt.Errorf("failed to create clubs table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS club_members (
					user_id      BIGINT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
					club_id      BIGINT NOT NULL REFERENCES clubs(id) ON DELETE RESTRICT,
					status       VARCHAR(16) NOT NULL DEFAULT 'Pending'
						CHECK (status IN ('Pending', 'Accepted', 'Rejected')),
					requested_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					decided_at   TIMESTAMPTZ,
					CONSTRAINT club_members_pkey PRIMARY KEY (user_id, club_id)
				);
				CREATE INDEX IF NOT EXISTS idx_club_members_club_status ON club_members(club_id, status);
			`); err != nil {
				return fmt.Errorf("failed to create club_members table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS club_updates (
					id              BIGSERIAL PRIMARY KEY,
					club_id         BIGINT NOT NULL REFERENCES clubs(id) ON DELETE RESTRICT,
					old_name        VARCHAR(100) NOT NULL,
					new_name        VARCHAR(100) NOT NULL,
					old_description TEXT NOT NULL,
					new_description TEXT NOT NULL,
					updated_by      BIGINT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
					created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_club_updates_club_id ON club_updates(club_id);
			`); err != nil {
				return fmt.Errorf("failed to create club_updates table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Rolling back clubs tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				DROP TABLE IF EXISTS club_updates;
				DROP TABLE IF EXISTS club_members;
				DROP TABLE IF EXISTS clubs;
			`); err != nil {
				return fmt.Errorf("failed to drop clubs tables: %w", err)
			}
			return nil
		})
	})
}
