package authdomain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActor(t *testing.T) {
	leader := Actor{UserID: 5, Role: RoleClubLeader}
	admin := Actor{UserID: 1, Role: RoleAdmin}
	anonymous := Actor{}

	assert.True(t, leader.Is(5))
	assert.False(t, leader.Is(6))
	assert.True(t, admin.Is(6))
	assert.False(t, anonymous.Is(0))

	assert.True(t, leader.HasRole(RoleClubLeader))
	assert.False(t, leader.HasRole(RoleStudent))
	assert.True(t, admin.HasRole(RoleStudent))
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" clubleader ")
	assert.True(t, ok)
	assert.Equal(t, RoleClubLeader, r)

	_, ok = ParseRole("Librarian")
	assert.False(t, ok)
	assert.False(t, Role("Librarian").IsValid())
}

func TestClaimsContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, Actor{}, ActorFromContext(ctx))

	claims := &Claims{UserID: 9, Role: RoleStudent, ExpiresAt: time.Now().Add(time.Hour)}
	ctx = WithClaims(ctx, claims)

	got, ok := ClaimsFromContext(ctx)
	assert.True(t, ok)
	assert.Same(t, claims, got)
	assert.Equal(t, Actor{UserID: 9, Role: RoleStudent}, ActorFromContext(ctx))
	assert.False(t, claims.IsExpired())
}
