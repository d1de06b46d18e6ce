package authjwt

import (
	"testing"
	"time"

	authdomain "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-chars-long!!"

func TestProvider_GenerateAndValidateToken(t *testing.T) {
	p := NewProvider(testSecret, "campus-clubs", "campus-clubs-spa")

	claims := &authdomain.Claims{
		UserID:   42,
		UserName: "leader",
		Role:     authdomain.RoleClubLeader,
	}

	tests := []struct {
		name        string
		token       func(t *testing.T) string
		provider    Provider
		expectedErr error
		verify      func(t *testing.T, validated *authdomain.Claims)
	}{
		{
			name: "success",
			token: func(t *testing.T) string {
				tok, err := p.GenerateToken(claims, time.Hour)
				require.NoError(t, err)
				return tok
			},
			provider: p,
			verify: func(t *testing.T, validated *authdomain.Claims) {
				assert.Equal(t, int64(42), validated.UserID)
				assert.Equal(t, "leader", validated.UserName)
				assert.Equal(t, authdomain.RoleClubLeader, validated.Role)
				assert.NotEmpty(t, validated.TokenID)
				assert.WithinDuration(t, time.Now().Add(time.Hour), validated.ExpiresAt, 5*time.Second)
			},
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				tok, err := p.GenerateToken(claims, -time.Hour)
				require.NoError(t, err)
				return tok
			},
			provider:    p,
			expectedErr: ErrExpiredToken,
		},
		{
			name: "invalid signature",
			token: func(t *testing.T) string {
				tok, err := p.GenerateToken(claims, time.Hour)
				require.NoError(t, err)
				return tok
			},
			provider:    NewProvider("another-secret-at-least-32-chars-long", "campus-clubs", "campus-clubs-spa"),
			expectedErr: ErrInvalidSignature,
		},
		{
			name: "wrong audience",
			token: func(t *testing.T) string {
				tok, err := NewProvider(testSecret, "campus-clubs", "other").GenerateToken(claims, time.Hour)
				require.NoError(t, err)
				return tok
			},
			provider:    p,
			expectedErr: ErrInvalidToken,
		},
		{
			name: "unknown role",
			token: func(t *testing.T) string {
				tok, err := p.GenerateToken(&authdomain.Claims{UserID: 1, Role: "Janitor"}, time.Hour)
				require.NoError(t, err)
				return tok
			},
			provider:    p,
			expectedErr: ErrInvalidToken,
		},
		{
			name: "none algorithm",
			token: func(t *testing.T) string {
				tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1", "role": "Admin"})
				s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)
				return s
			},
			provider:    p,
			expectedErr: ErrInvalidSignature,
		},
		{
			name:        "malformed token",
			token:       func(t *testing.T) string { return "not.a.jwt" },
			provider:    p,
			expectedErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validated, err := tt.provider.ValidateToken(tt.token(t))
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, validated)
				return
			}
			require.NoError(t, err)
			tt.verify(t, validated)
		})
	}
}
