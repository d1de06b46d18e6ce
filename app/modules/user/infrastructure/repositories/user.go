package userdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Black-And-White-Club/campus-clubs/app/shared/dbutil"
	"github.com/uptrace/bun"
)

// Impl is the bun backed Repository.
type Impl struct {
	db bun.IDB
}

func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.db
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *Impl) GetRoleByName(ctx context.Context, db bun.IDB, name string) (*Role, error) {
	role := new(Role)
	err := r.resolveDB(db).NewSelect().
		Model(role).
		Where("lower(r.name) = lower(?)", name).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("userdb.GetRoleByName: %w", err)
	}
	return role, nil
}

func (r *Impl) CreateUser(ctx context.Context, db bun.IDB, user *User) error {
	user.Email = NormalizeEmail(user.Email)
	if _, err := r.resolveDB(db).NewInsert().Model(user).Returning("id, created_at").Exec(ctx); err != nil {
		if _, ok := dbutil.UniqueViolation(err); ok {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("userdb.CreateUser: %w", err)
	}
	return nil
}

func (r *Impl) GetUserByID(ctx context.Context, db bun.IDB, id int64) (*User, error) {
	user := new(User)
	err := r.resolveDB(db).NewSelect().
		Model(user).
		Relation("Role").
		Where("u.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("userdb.GetUserByID: %w", err)
	}
	return user, nil
}

func (r *Impl) GetUserByEmail(ctx context.Context, db bun.IDB, email string) (*User, error) {
	user := new(User)
	err := r.resolveDB(db).NewSelect().
		Model(user).
		Relation("Role").
		Where("u.email = ?", NormalizeEmail(email)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("userdb.GetUserByEmail: %w", err)
	}
	return user, nil
}

func (r *Impl) SaveRefreshToken(ctx context.Context, db bun.IDB, token *RefreshToken) error {
	if _, err := r.resolveDB(db).NewInsert().Model(token).Exec(ctx); err != nil {
		return fmt.Errorf("userdb.SaveRefreshToken: %w", err)
	}
	return nil
}

func (r *Impl) GetRefreshToken(ctx context.Context, db bun.IDB, hash string) (*RefreshToken, error) {
	token := new(RefreshToken)
	err := r.resolveDB(db).NewSelect().Model(token).Where("rt.hash = ?", hash).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("userdb.GetRefreshToken: %w", err)
	}
	return token, nil
}

func (r *Impl) RevokeRefreshToken(ctx context.Context, db bun.IDB, hash string, at time.Time) error {
	res, err := r.resolveDB(db).NewUpdate().
		Model((*RefreshToken)(nil)).
		Set("revoked = true").
		Set("revoked_at = ?", at).
		Where("hash = ?", hash).
		Where("revoked = false").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("userdb.RevokeRefreshToken: %w", err)
	}
	return requireAffected(res)
}

func (r *Impl) RevokeTokenFamily(ctx context.Context, db bun.IDB, family string, at time.Time) error {
	_, err := r.resolveDB(db).NewUpdate().
		Model((*RefreshToken)(nil)).
		Set("revoked = true").
		Set("revoked_at = ?", at).
		Where("token_family = ?", family).
		Where("revoked = false").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("userdb.RevokeTokenFamily: %w", err)
	}
	return nil
}

func (r *Impl) TouchRefreshToken(ctx context.Context, db bun.IDB, hash string, at time.Time) error {
	res, err := r.resolveDB(db).NewUpdate().
		Model((*RefreshToken)(nil)).
		Set("last_used_at = ?", at).
		Where("hash = ?", hash).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("userdb.TouchRefreshToken: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
