package authservice

import (
	"context"
	"strings"
	"sync"
	"time"

	authdomain "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/infrastructure/jwt"
	userdb "github.com/Black-And-White-Club/campus-clubs/app/modules/user/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// FakeUserRepository is an in-memory userdb.Repository. Func fields override
// the default behaviour for a single test.
type FakeUserRepository struct {
	mu     sync.Mutex
	trace  []string
	nextID int64

	roles  map[string]*userdb.Role
	users  map[int64]*userdb.User
	tokens map[string]*userdb.RefreshToken

	GetUserByEmailFunc func(ctx context.Context, db bun.IDB, email string) (*userdb.User, error)
	CreateUserFunc     func(ctx context.Context, db bun.IDB, user *userdb.User) error
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{
		roles: map[string]*userdb.Role{
			"admin":      {ID: 1, Name: "Admin"},
			"clubleader": {ID: 2, Name: "ClubLeader"},
			"student":    {ID: 3, Name: "Student"},
		},
		users:  map[int64]*userdb.User{},
		tokens: map[string]*userdb.RefreshToken{},
	}
}

func (f *FakeUserRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeUserRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeUserRepository) GetRoleByName(ctx context.Context, db bun.IDB, name string) (*userdb.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetRoleByName")
	for k, r := range f.roles {
		if k == strings.ToLower(name) {
			return r, nil
		}
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepository) CreateUser(ctx context.Context, db bun.IDB, user *userdb.User) error {
	if f.CreateUserFunc != nil {
		return f.CreateUserFunc(ctx, db, user)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateUser")
	user.Email = userdb.NormalizeEmail(user.Email)
	for _, u := range f.users {
		if u.Email == user.Email {
			return userdb.ErrDuplicateEmail
		}
	}
	f.nextID++
	user.ID = f.nextID
	for _, r := range f.roles {
		if r.ID == user.RoleID {
			user.Role = r
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *FakeUserRepository) GetUserByID(ctx context.Context, db bun.IDB, id int64) (*userdb.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetUserByID")
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepository) GetUserByEmail(ctx context.Context, db bun.IDB, email string) (*userdb.User, error) {
	if f.GetUserByEmailFunc != nil {
		return f.GetUserByEmailFunc(ctx, db, email)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetUserByEmail")
	for _, u := range f.users {
		if u.Email == userdb.NormalizeEmail(email) {
			return u, nil
		}
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepository) SaveRefreshToken(ctx context.Context, db bun.IDB, token *userdb.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("SaveRefreshToken")
	f.tokens[token.Hash] = token
	return nil
}

func (f *FakeUserRepository) GetRefreshToken(ctx context.Context, db bun.IDB, hash string) (*userdb.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetRefreshToken")
	if t, ok := f.tokens[hash]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepository) RevokeRefreshToken(ctx context.Context, db bun.IDB, hash string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("RevokeRefreshToken")
	t, ok := f.tokens[hash]
	if !ok || t.Revoked {
		return userdb.ErrNoRowsAffected
	}
	t.Revoked = true
	t.RevokedAt = &at
	return nil
}

func (f *FakeUserRepository) RevokeTokenFamily(ctx context.Context, db bun.IDB, family string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("RevokeTokenFamily")
	for _, t := range f.tokens {
		if t.TokenFamily == family && !t.Revoked {
			t.Revoked = true
			t.RevokedAt = &at
		}
	}
	return nil
}

func (f *FakeUserRepository) TouchRefreshToken(ctx context.Context, db bun.IDB, hash string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("TouchRefreshToken")
	return nil
}

// liveTokens counts refresh tokens of family that are not revoked.
func (f *FakeUserRepository) liveTokens(family string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.tokens {
		if t.TokenFamily == family && !t.Revoked {
			n++
		}
	}
	return n
}

// FakeJWTProvider returns a fixed access token unless overridden.
type FakeJWTProvider struct {
	GenerateTokenFunc func(claims *authdomain.Claims, ttl time.Duration) (string, error)
	ValidateTokenFunc func(token string) (*authdomain.Claims, error)
}

func (f *FakeJWTProvider) GenerateToken(claims *authdomain.Claims, ttl time.Duration) (string, error) {
	if f.GenerateTokenFunc != nil {
		return f.GenerateTokenFunc(claims, ttl)
	}
	return "access-token", nil
}

func (f *FakeJWTProvider) ValidateToken(token string) (*authdomain.Claims, error) {
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(token)
	}
	return nil, authjwt.ErrInvalidToken
}

var (
	_ userdb.Repository = (*FakeUserRepository)(nil)
	_ authjwt.Provider  = (*FakeJWTProvider)(nil)
)
