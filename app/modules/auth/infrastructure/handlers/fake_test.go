package authhandlers

import (
	"context"

	authservice "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/domain"
)

// FakeService implements authservice.Service with overridable funcs.
type FakeService struct {
	RegisterFunc      func(ctx context.Context, req authservice.RegisterRequest) (*authservice.Session, error)
	LoginFunc         func(ctx context.Context, email, password string) (*authservice.Session, error)
	RefreshFunc       func(ctx context.Context, refreshToken string) (*authservice.Session, error)
	LogoutFunc        func(ctx context.Context, refreshToken string) error
	ValidateTokenFunc func(ctx context.Context, accessToken string) (*authdomain.Claims, error)
	EnsureAdminFunc   func(ctx context.Context, email, password string) error
}

func (f *FakeService) Register(ctx context.Context, req authservice.RegisterRequest) (*authservice.Session, error) {
	if f.RegisterFunc != nil {
		return f.RegisterFunc(ctx, req)
	}
	return &authservice.Session{}, nil
}

func (f *FakeService) Login(ctx context.Context, email, password string) (*authservice.Session, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, email, password)
	}
	return &authservice.Session{}, nil
}

func (f *FakeService) Refresh(ctx context.Context, refreshToken string) (*authservice.Session, error) {
	if f.RefreshFunc != nil {
		return f.RefreshFunc(ctx, refreshToken)
	}
	return &authservice.Session{}, nil
}

func (f *FakeService) Logout(ctx context.Context, refreshToken string) error {
	if f.LogoutFunc != nil {
		return f.LogoutFunc(ctx, refreshToken)
	}
	return nil
}

func (f *FakeService) ValidateToken(ctx context.Context, accessToken string) (*authdomain.Claims, error) {
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(ctx, accessToken)
	}
	return nil, authservice.ErrInvalidToken
}

func (f *FakeService) EnsureAdmin(ctx context.Context, email, password string) error {
	if f.EnsureAdminFunc != nil {
		return f.EnsureAdminFunc(ctx, email, password)
	}
	return nil
}

var _ authservice.Service = (*FakeService)(nil)
