package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

const (
	msgInvalidCredentialFormat = "Invalid username or password format"
	msgUsernameTaken           = "Username already taken"
	msgInvalidCredentials      = "Invalid username or password"
	msgTooManyLoginAttempts    = "Too many login attempts, try again later"
)

// RegisterInput is the registration payload.
type RegisterInput struct {
	Username string `validate:"required"`
	Password string `validate:"required,min=8,max=72"`
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	limiter    auth.LoginLimiter
	tokenMgr   *auth.TokenManager
	validate   *validator.Validate
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates collaborators for the auth service. Limiter is optional.
type AuthDependencies struct {
	UserRepo  repository.UserRepository
	Limiter   auth.LoginLimiter
	Validator *validator.Validate
	Logger    *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	validate := deps.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		limiter:    deps.Limiter,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
		validate:   validate,
		logger:     logger,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, apperrors.NewValidationError(msgInvalidCredentialFormat, nil)
	}

	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewConflict(msgUsernameTaken, nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, apperrors.NewConflict(msgUsernameTaken, nil)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login authenticates a user and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if s.loginBlocked(ctx, username) {
		return "", time.Time{}, apperrors.NewTooManyRequests(msgTooManyLoginAttempts)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, fmt.Errorf("lookup user: %w", err)
		}
		auth.CompareDummy(password)
		s.recordFailure(ctx, username)
		return "", time.Time{}, apperrors.NewValidationError(msgInvalidCredentials, nil)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.recordFailure(ctx, username)
		return "", time.Time{}, apperrors.NewValidationError(msgInvalidCredentials, nil)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	s.resetFailures(ctx, username)
	return token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Limiter errors are logged and treated as not blocked.
func (s *AuthService) loginBlocked(ctx context.Context, username string) bool {
	if s.limiter == nil {
		return false
	}
	blocked, err := s.limiter.Blocked(ctx, username)
	if err != nil {
		s.logger.Warn("login limiter unavailable", zap.Error(err))
		return false
	}
	return blocked
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, username); err != nil {
		s.logger.Warn("record login failure", zap.Error(err))
	}
}

func (s *AuthService) resetFailures(ctx context.Context, username string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.Reset(ctx, username); err != nil {
		s.logger.Warn("reset login failures", zap.Error(err))
	}
}
