package auth

import (
	"context"
	"log/slog"
	"net/http"

	authservice "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/application"
	authhandlers "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/infrastructure/jwt"
	userdb "github.com/Black-And-White-Club/campus-clubs/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/observability"
	"github.com/Black-And-White-Club/campus-clubs/config"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"golang.org/x/time/rate"
)

// Module represents the auth module.
type Module struct {
	config   *config.Config
	service  authservice.Service
	handlers authhandlers.Handlers
	limiter  *authhandlers.IPRateLimiter
	logger   *slog.Logger
}

// NewModule creates a new auth module.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	userRepo userdb.Repository,
	db *bun.DB,
) *Module {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing auth module")

	jwtProvider := authjwt.NewProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)

	service := authservice.NewService(
		jwtProvider,
		userRepo,
		authservice.Config{
			AccessTTL:  cfg.JWT.AccessTTL,
			RefreshTTL: cfg.JWT.RefreshTTL,
		},
		logger,
		obs.Metrics,
		obs.Tracer,
		db,
	)

	return &Module{
		config:   cfg,
		service:  service,
		handlers: authhandlers.NewAuthHandlers(service, logger),
		limiter:  authhandlers.NewIPRateLimiter(rate.Limit(cfg.HTTP.RateLimitRPS), cfg.HTTP.RateLimitBurst),
		logger:   logger,
	}
}

// RegisterRoutes mounts the public account endpoints behind the rate limiter.
func (m *Module) RegisterRoutes(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Use(authhandlers.RateLimitMiddleware(m.limiter))

		r.Post("/Register", m.handlers.HandleRegister)
		r.Post("/Login", m.handlers.HandleLogin)
		r.Post("/Refresh", m.handlers.HandleRefresh)
		r.Post("/Logout", m.handlers.HandleLogout)
	})
}

// Authenticate returns the middleware guarding every other /api route.
func (m *Module) Authenticate() func(next http.Handler) http.Handler {
	return authhandlers.Authenticate(m.service)
}

// EnsureAdmin seeds the configured administrator. It is a no-op when no
// admin email is configured.
func (m *Module) EnsureAdmin(ctx context.Context) error {
	if m.config.Admin.Email == "" {
		return nil
	}
	m.logger.InfoContext(ctx, "Ensuring administrator account", "email", m.config.Admin.Email)
	return m.service.EnsureAdmin(ctx, m.config.Admin.Email, m.config.Admin.Password)
}

// GetService returns the auth service for use by other modules.
func (m *Module) GetService() authservice.Service {
	return m.service
}
