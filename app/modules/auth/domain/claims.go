package authdomain

import (
	"time"
)

// Claims represents the domain model for authentication claims.
type Claims struct {
	UserID    int64
	UserName  string
	Role      Role
	TokenID   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// IsExpired checks if the claims have expired.
func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// Actor returns the identity the claims grant.
func (c *Claims) Actor() Actor {
	return Actor{UserID: c.UserID, Role: c.Role}
}
