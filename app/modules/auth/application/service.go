package authservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	authdomain "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/infrastructure/jwt"
	userdb "github.com/Black-And-White-Club/campus-clubs/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/metrics"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/operation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// dummyHash is compared against when an email is unknown so that login
// latency does not reveal which accounts exist.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3Zs2E5JqvW3rX7m6uHbC3eW"

type service struct {
	jwtProvider authjwt.Provider
	repo        userdb.Repository
	config      Config
	logger      *slog.Logger
	runner      *operation.Runner
	now         func() time.Time
}

// NewService creates a new auth service.
func NewService(
	jwtProvider authjwt.Provider,
	repo userdb.Repository,
	cfg Config,
	logger *slog.Logger,
	m metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = 30 * 24 * time.Hour
	}
	return &service{
		jwtProvider: jwtProvider,
		repo:        repo,
		config:      cfg,
		logger:      logger,
		runner:      operation.NewRunner("AuthService", logger, m, tracer, db),
		now:         time.Now,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	req.UserName = strings.TrimSpace(req.UserName)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	return operation.Run(s.runner, ctx, "Register", req.Email, func(ctx context.Context, db bun.IDB) (results.OperationResult[*Session, error], error) {
		if err := validateRegistration(req); err != nil {
			return operation.Failure[*Session](err)
		}

		roleName, ok := authdomain.ParseRole(req.RoleName)
		if !ok {
			return operation.Failure[*Session](ErrUnknownRole)
		}
		if roleName == authdomain.RoleAdmin {
			return operation.Failure[*Session](ErrAdminSelfRegister)
		}

		user, err := s.createUser(ctx, db, req, roleName)
		if err != nil {
			if errors.Is(err, userdb.ErrDuplicateEmail) {
				return operation.Failure[*Session](ErrEmailTaken)
			}
			if errors.Is(err, userdb.ErrNotFound) {
				return operation.Failure[*Session](ErrUnknownRole)
			}
			return results.OperationResult[*Session, error]{}, err
		}

		session, err := s.openSession(ctx, db, user, uuid.NewString())
		if err != nil {
			return results.OperationResult[*Session, error]{}, err
		}
		return operation.Success(session)
	})
}

func (s *service) createUser(ctx context.Context, db bun.IDB, req RegisterRequest, roleName authdomain.Role) (*userdb.User, error) {
	role, err := s.repo.GetRoleByName(ctx, db, roleName.String())
	if err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &userdb.User{
		UserName:     req.UserName,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		RoleID:       role.ID,
		Role:         role,
	}
	if err := s.repo.CreateUser(ctx, db, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)

	return operation.Run(s.runner, ctx, "Login", email, func(ctx context.Context, db bun.IDB) (results.OperationResult[*Session, error], error) {
		if email == "" || password == "" {
			return operation.Failure[*Session](ErrInvalidCredentials)
		}

		user, err := s.repo.GetUserByEmail(ctx, db, email)
		if err != nil && !errors.Is(err, userdb.ErrNotFound) {
			return results.OperationResult[*Session, error]{}, err
		}

		hash := dummyHash
		if user != nil {
			hash = user.PasswordHash
		}
		ok, err := checkPassword(hash, password)
		if err != nil && user != nil {
			return results.OperationResult[*Session, error]{}, err
		}
		if user == nil || !ok {
			return operation.Failure[*Session](ErrInvalidCredentials)
		}

		session, err := s.openSession(ctx, db, user, uuid.NewString())
		if err != nil {
			return results.OperationResult[*Session, error]{}, err
		}
		return operation.Success(session)
	})
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	session, err := s.rotate(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionRevoked
	}
	return session, nil
}

// rotate returns a nil session without error when token reuse was detected,
// so the family revocation commits.
func (s *service) rotate(ctx context.Context, refreshToken string) (*Session, error) {
	return operation.Run(s.runner, ctx, "Refresh", "", func(ctx context.Context, db bun.IDB) (results.OperationResult[*Session, error], error) {
		if refreshToken == "" {
			return operation.Failure[*Session](ErrInvalidToken)
		}

		hash := hashToken(refreshToken)
		stored, err := s.repo.GetRefreshToken(ctx, db, hash)
		if err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return operation.Failure[*Session](ErrInvalidToken)
			}
			return results.OperationResult[*Session, error]{}, err
		}

		now := s.now()
		if stored.Revoked {
			s.logger.WarnContext(ctx, "Refresh token reuse detected, revoking family",
				attr.ExtractCorrelationID(ctx),
				attr.String("token_family", stored.TokenFamily),
				attr.Int("user_id", int(stored.UserID)),
			)
			if err := s.repo.RevokeTokenFamily(ctx, db, stored.TokenFamily, now); err != nil {
				return results.OperationResult[*Session, error]{}, err
			}
			return operation.Success[*Session](nil)
		}
		if now.After(stored.ExpiresAt) {
			return operation.Failure[*Session](ErrInvalidToken)
		}

		if err := s.repo.RevokeRefreshToken(ctx, db, hash, now); err != nil {
			return results.OperationResult[*Session, error]{}, err
		}

		user, err := s.repo.GetUserByID(ctx, db, stored.UserID)
		if err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return operation.Failure[*Session](ErrInvalidToken)
			}
			return results.OperationResult[*Session, error]{}, err
		}

		session, err := s.openSession(ctx, db, user, stored.TokenFamily)
		if err != nil {
			return results.OperationResult[*Session, error]{}, err
		}
		return operation.Success(session)
	})
}

func (s *service) Logout(ctx context.Context, refreshToken string) error {
	_, err := operation.Run(s.runner, ctx, "Logout", "", func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
		if refreshToken == "" {
			return operation.Success(struct{}{})
		}
		err := s.repo.RevokeRefreshToken(ctx, db, hashToken(refreshToken), s.now())
		if err != nil && !errors.Is(err, userdb.ErrNoRowsAffected) {
			return results.OperationResult[struct{}, error]{}, err
		}
		return operation.Success(struct{}{})
	})
	return err
}

func (s *service) ValidateToken(ctx context.Context, accessToken string) (*authdomain.Claims, error) {
	claims, err := s.jwtProvider.ValidateToken(accessToken)
	if err != nil {
		s.logger.DebugContext(ctx, "Access token rejected", attr.Error(err))
		return nil, ErrInvalidToken.Wrap(err)
	}
	return claims, nil
}

func (s *service) EnsureAdmin(ctx context.Context, email, password string) error {
	_, err := operation.Run(s.runner, ctx, "EnsureAdmin", email, func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
		_, err := s.repo.GetUserByEmail(ctx, db, email)
		if err == nil {
			return operation.Success(struct{}{})
		}
		if !errors.Is(err, userdb.ErrNotFound) {
			return results.OperationResult[struct{}, error]{}, err
		}

		if err := validatePassword(password); err != nil {
			return operation.Failure[struct{}](err)
		}
		req := RegisterRequest{UserName: "Admin", Email: email, Password: password}
		if _, err := s.createUser(ctx, db, req, authdomain.RoleAdmin); err != nil {
			return results.OperationResult[struct{}, error]{}, fmt.Errorf("seed admin: %w", err)
		}
		s.logger.InfoContext(ctx, "Seeded administrator account", attr.String("email", email))
		return operation.Success(struct{}{})
	})
	return err
}

// openSession mints an access token and stores a fresh refresh token in family.
func (s *service) openSession(ctx context.Context, db bun.IDB, user *userdb.User, family string) (*Session, error) {
	role := authdomain.Role(user.RoleName())
	expiresAt := s.now().Add(s.config.AccessTTL)

	access, err := s.jwtProvider.GenerateToken(&authdomain.Claims{
		UserID:   user.ID,
		UserName: user.UserName,
		Role:     role,
	}, s.config.AccessTTL)
	if err != nil {
		return nil, err
	}

	refresh, hash, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveRefreshToken(ctx, db, &userdb.RefreshToken{
		Hash:        hash,
		UserID:      user.ID,
		TokenFamily: family,
		ExpiresAt:   s.now().Add(s.config.RefreshTTL),
	}); err != nil {
		return nil, err
	}

	return &Session{
		UserID:       user.ID,
		UserName:     user.UserName,
		RoleName:     role.String(),
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}, nil
}
