package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/repository/repositorytest"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

type fakeLimiter struct {
	blocked  bool
	err      error
	failures map[string]int
	resets   int
}

func (f *fakeLimiter) Blocked(_ context.Context, _ string) (bool, error) {
	return f.blocked, f.err
}

func (f *fakeLimiter) RecordFailure(_ context.Context, username string) error {
	if f.failures == nil {
		f.failures = map[string]int{}
	}
	f.failures[username]++
	return f.err
}

func (f *fakeLimiter) Reset(_ context.Context, _ string) error {
	f.resets++
	return f.err
}

func newAuthService(t *testing.T, limiter *fakeLimiter) (*AuthService, *repositorytest.Users) {
	t.Helper()
	users := repositorytest.NewUsers()
	deps := AuthDependencies{UserRepo: users, Logger: zap.NewNop()}
	if limiter != nil {
		deps.Limiter = limiter
	}
	svc := NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}, deps)
	return svc, users
}

func requireDomainError(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, status, domainErr.HTTPStatus)
	assert.Equal(t, message, domainErr.Message)
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "password123", user.PasswordHash)

	token, exp, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t, nil)

	cases := []RegisterInput{
		{Username: "", Password: "password123"},
		{Username: "bob", Password: ""},
		{Username: "bob", Password: "short"},
	}
	for _, input := range cases {
		_, err := svc.Register(context.Background(), input)
		requireDomainError(t, err, http.StatusBadRequest, "Invalid username or password format")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "alice", Password: "another-password"})
	requireDomainError(t, err, http.StatusBadRequest, "Username already taken")
}

func TestLoginInvalidCredentials(t *testing.T) {
	limiter := &fakeLimiter{}
	svc, _ := newAuthService(t, limiter)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice", "wrong-password")
	requireDomainError(t, err, http.StatusBadRequest, "Invalid username or password")

	_, _, err = svc.Login(ctx, "nobody", "password123")
	requireDomainError(t, err, http.StatusBadRequest, "Invalid username or password")

	assert.Equal(t, 1, limiter.failures["alice"])
	assert.Equal(t, 1, limiter.failures["nobody"])
	assert.Zero(t, limiter.resets)
}

func TestLoginBlockedByLimiter(t *testing.T) {
	svc, _ := newAuthService(t, &fakeLimiter{blocked: true})

	_, _, err := svc.Login(context.Background(), "alice", "password123")
	requireDomainError(t, err, http.StatusTooManyRequests, "Too many login attempts, try again later")
}

func TestLoginLimiterFailureDoesNotBlock(t *testing.T) {
	limiter := &fakeLimiter{blocked: true, err: errors.New("redis down")}
	svc, _ := newAuthService(t, limiter)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	token, _, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 1, limiter.resets)
}

func TestLoginRepositoryError(t *testing.T) {
	svc, users := newAuthService(t, nil)
	users.Err = errors.New("connection refused")

	_, _, err := svc.Login(context.Background(), "alice", "password123")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperrors.ToDomainError(err).HTTPStatus)
}
