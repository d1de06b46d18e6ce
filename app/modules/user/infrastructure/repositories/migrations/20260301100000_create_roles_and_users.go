package usermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating roles and users tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS roles (
					id   BIGINT PRIMARY KEY,
					name VARCHAR(32) NOT NULL UNIQUE
				);
				INSERT INTO roles (id, name) VALUES
					(1, 'Admin'),
					(2, 'ClubLeader'),
					(3, 'Student')
				ON CONFLICT (id) DO NOTHING;
			`); err != nil {
				return fmt.Errorf("failed to create roles table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS users (
					id            BIGSERIAL PRIMARY KEY,
					user_name     VARCHAR(100) NOT NULL,
					email         VARCHAR(255) NOT NULL,
					password_hash VARCHAR(100) NOT NULL,
					phone         VARCHAR(11) NOT NULL DEFAULT '',
					role_id       BIGINT NOT NULL REFERENCES roles(id) ON DELETE RESTRICT,
					created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT users_email_key UNIQUE (email)
				);
				CREATE INDEX IF NOT EXISTS idx_users_role_id ON users(role_id);
			`); err != nil {
				return fmt.Errorf("failed to create users table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Rolling back roles and users tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS users; DROP TABLE IF EXISTS roles;`); err != nil {
				return fmt.Errorf("failed to drop users and roles: %w", err)
			}
			return nil
		})
	})
}
