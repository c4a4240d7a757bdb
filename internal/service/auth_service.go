package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/telecom-triage/internal/auth"
	"github.com/spec-kit/telecom-triage/internal/config"
	"github.com/spec-kit/telecom-triage/internal/domain"
	"github.com/spec-kit/telecom-triage/internal/repository"
	apperrors "github.com/spec-kit/telecom-triage/pkg/util"
)

// AuthService coordinates registration and login flows keyed by the
// subscriber's phone number.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	bootstrap  config.BootstrapOperatorConfig
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		bootstrap:  cfg.Auth.BootstrapOperator,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates a new subscriber account. Public registration always
// yields a customer; operator accounts are provisioned separately.
func (s *AuthService) Register(ctx context.Context, name, phone, password string) (*domain.User, string, time.Time, error) {
	return s.register(ctx, name, phone, password, domain.RoleCustomer)
}

// RegisterOperator provisions a support operator account. Callers gate this
// behind an already-authenticated operator.
func (s *AuthService) RegisterOperator(ctx context.Context, name, phone, password string) (*domain.User, string, time.Time, error) {
	return s.register(ctx, name, phone, password, domain.RoleOperator)
}

func (s *AuthService) register(ctx context.Context, name, phone, password string, role domain.UserRole) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByPhone(ctx, phone); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("phone already registered", map[string]any{"phone": phone})
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	user := &domain.User{
		Name:         name,
		Phone:        phone,
		PasswordHash: hash,
		Role:         role,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// EnsureBootstrapOperator creates the initial operator account from
// configuration when no account with that phone exists yet. Without it a
// fresh deployment has no way to reach the operator-gated surface.
func (s *AuthService) EnsureBootstrapOperator(ctx context.Context) error {
	if s.bootstrap.Phone == "" || s.bootstrap.Password == "" {
		return nil
	}
	if _, err := s.users.GetByPhone(ctx, s.bootstrap.Phone); err == nil {
		return nil
	} else if err != pgx.ErrNoRows {
		return err
	}

	name := s.bootstrap.Name
	if name == "" {
		name = "Operator"
	}
	_, _, _, err := s.register(ctx, name, s.bootstrap.Phone, s.bootstrap.Password, domain.RoleOperator)
	return err
}

// Login authenticates a subscriber or operator by phone and password.
func (s *AuthService) Login(ctx context.Context, phone, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if user.Status != domain.UserStatusActive {
		return nil, "", time.Time{}, apperrors.NewForbidden("account suspended")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}
