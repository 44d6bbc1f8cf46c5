//go:build integration

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisLoginLimiter(t *testing.T) {
	client := setupRedis(t)
	limiter := NewRedisLoginLimiter(client, 3, time.Minute)
	require.NotNil(t, limiter)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		blocked, err := limiter.Blocked(ctx, "user1")
		require.NoError(t, err)
		assert.False(t, blocked)
		require.NoError(t, limiter.RecordFailure(ctx, "user1"))
	}

	blocked, err := limiter.Blocked(ctx, "user1")
	require.NoError(t, err)
	assert.True(t, blocked)

	ttl, err := client.TTL(ctx, loginAttemptsKey("user1")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	blocked, err = limiter.Blocked(ctx, "user2")
	require.NoError(t, err)
	assert.False(t, blocked)

	require.NoError(t, limiter.Reset(ctx, "user1"))
	blocked, err = limiter.Blocked(ctx, "user1")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestNewRedisLoginLimiterDisabled(t *testing.T) {
	assert.Nil(t, NewRedisLoginLimiter(nil, 3, time.Minute))
}
