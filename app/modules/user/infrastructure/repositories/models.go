package userdb

import (
	"time"

	"github.com/uptrace/bun"
)

// Role is one row of the fixed roles table.
type Role struct {
	bun.BaseModel `bun:"table:roles,alias:r"`

	ID   int64  `bun:"id,pk"`
	Name string `bun:"name,notnull,unique"`
}

// User is an account. Email is globally unique.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement"`
	UserName     string    `bun:"user_name,notnull"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	Phone        string    `bun:"phone,notnull,default:''"`
	RoleID       int64     `bun:"role_id,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`

	Role *Role `bun:"rel:belongs-to,join:role_id=id"`
}

// RoleName returns the joined role's name, or "" when the relation was not loaded.
func (u *User) RoleName() string {
	if u == nil || u.Role == nil {
		return ""
	}
	return u.Role.Name
}

// RefreshToken is a long-lived session token, stored by hash only.
type RefreshToken struct {
	bun.BaseModel `bun:"table:refresh_tokens,alias:rt"`

	Hash        string     `bun:"hash,pk"`
	UserID      int64      `bun:"user_id,notnull"`
	TokenFamily string     `bun:"token_family,notnull"`
	ExpiresAt   time.Time  `bun:"expires_at,notnull"`
	CreatedAt   time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	LastUsedAt  *time.Time `bun:"last_used_at"`
	Revoked     bool       `bun:"revoked,notnull,default:false"`
	RevokedAt   *time.Time `bun:"revoked_at"`
	UserAgent   *string    `bun:"user_agent,nullzero"`
}
