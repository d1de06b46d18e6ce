package userdb

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for accounts and sessions.
//
// Error semantics:
//   - ErrNotFound: requested record does not exist (Get* methods)
//   - ErrDuplicateEmail: insert collided with the unique email index
//   - ErrNoRowsAffected: UPDATE matched no rows
//   - other errors: infrastructure failures
type Repository interface {
	GetRoleByName(ctx context.Context, db bun.IDB, name string) (*Role, error)
	CreateUser(ctx context.Context, db bun.IDB, user *User) error
	GetUserByID(ctx context.Context, db bun.IDB, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, db bun.IDB, email string) (*User, error)

	SaveRefreshToken(ctx context.Context, db bun.IDB, token *RefreshToken) error
	GetRefreshToken(ctx context.Context, db bun.IDB, hash string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, db bun.IDB, hash string, at time.Time) error
	RevokeTokenFamily(ctx context.Context, db bun.IDB, family string, at time.Time) error
	TouchRefreshToken(ctx context.Context, db bun.IDB, hash string, at time.Time) error
}
