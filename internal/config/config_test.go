package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "complaint-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:3000", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 5, cfg.Auth.LoginMaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LoginWindow)
	assert.Equal(t, 10, cfg.Pagination.DefaultPageSize)
	assert.Zero(t, cfg.Pagination.MaxPageSize)
	assert.True(t, cfg.Postgres.RunMigrations)
	assert.Equal(t, "migrations", cfg.Postgres.MigrationsDir)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("APP_PORT", "8081")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "5")
	t.Setenv("AUTH_LOGIN_WINDOW", "1m")
	t.Setenv("PAGINATION_MAX_PAGE_SIZE", "100")
	t.Setenv("POSTGRES_MAX_CONNS", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, "8081", cfg.App.Port)
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, time.Minute, cfg.Auth.LoginWindow)
	assert.Equal(t, 100, cfg.Pagination.MaxPageSize)
	assert.Equal(t, int32(25), cfg.Postgres.MaxConns)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestValidateRejectsBadPagination(t *testing.T) {
	cfg := &Config{
		Auth:       AuthConfig{JWTSecret: "x"},
		Pagination: PaginationConfig{DefaultPageSize: 0},
	}
	assert.Error(t, cfg.Validate())

	cfg.Pagination = PaginationConfig{DefaultPageSize: 10, MaxPageSize: -1}
	assert.Error(t, cfg.Validate())
}

func TestRequestTimeoutDisabled(t *testing.T) {
	assert.Zero(t, AppConfig{RequestTimeoutSeconds: 0}.RequestTimeout())
}
