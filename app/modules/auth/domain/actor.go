package authdomain

import "context"

// Actor is the authenticated caller of a workflow operation.
type Actor struct {
	UserID int64
	Role   Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// Is reports whether the actor is userID, or an admin acting on their behalf.
func (a Actor) Is(userID int64) bool {
	return a.IsAdmin() || (a.UserID != 0 && a.UserID == userID)
}

// HasRole reports whether the actor holds one of roles. Admin holds every role.
func (a Actor) HasRole(roles ...Role) bool {
	if a.IsAdmin() {
		return true
	}
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

type claimsKey struct{}

// WithClaims stores verified claims on ctx.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// ClaimsFromContext returns the claims stored by WithClaims.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok && c != nil
}

// ActorFromContext returns the actor for the request, or the zero Actor.
func ActorFromContext(ctx context.Context) Actor {
	if c, ok := ClaimsFromContext(ctx); ok {
		return c.Actor()
	}
	return Actor{}
}
