package authservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/domain"
)

// Service defines the authentication service interface.
type Service interface {
	// Register validates and creates an account, then opens a session for it.
	Register(ctx context.Context, req RegisterRequest) (*Session, error)

	// Login checks credentials and opens a session.
	Login(ctx context.Context, email, password string) (*Session, error)

	// Refresh rotates a refresh token. Presenting an already rotated token
	// revokes its whole family.
	Refresh(ctx context.Context, refreshToken string) (*Session, error)

	// Logout revokes a refresh token. Unknown tokens are ignored.
	Logout(ctx context.Context, refreshToken string) error

	// ValidateToken validates an access token and returns its claims.
	ValidateToken(ctx context.Context, accessToken string) (*authdomain.Claims, error)

	// EnsureAdmin creates the administrator account if the email is unused.
	EnsureAdmin(ctx context.Context, email, password string) error
}

type RegisterRequest struct {
	UserName string
	Email    string
	Password string
	Phone    string
	RoleName string
}

// Session is what Register, Login and Refresh hand back to the client.
type Session struct {
	UserID       int64     `json:"id"`
	UserName     string    `json:"userName"`
	RoleName     string    `json:"roleName"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type Config struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	BcryptCost int
}
