package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter tracks failed login attempts per username.
type LoginLimiter interface {
	Blocked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// RedisLoginLimiter keeps a counter per username that expires after window.
type RedisLoginLimiter struct {
	client      redis.Cmdable
	maxAttempts int
	window      time.Duration
}

// NewRedisLoginLimiter returns nil when the limiter is disabled.
func NewRedisLoginLimiter(client redis.Cmdable, maxAttempts int, window time.Duration) *RedisLoginLimiter {
	if client == nil || maxAttempts <= 0 || window <= 0 {
		return nil
	}
	return &RedisLoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

func loginAttemptsKey(username string) string {
	return "login_attempts:" + username
}

// Blocked reports whether username has used up its failed attempts.
func (l *RedisLoginLimiter) Blocked(ctx context.Context, username string) (bool, error) {
	count, err := l.client.Get(ctx, loginAttemptsKey(username)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count >= l.maxAttempts, nil
}

// RecordFailure increments the counter, starting the window on the first failure.
func (l *RedisLoginLimiter) RecordFailure(ctx context.Context, username string) error {
	key := loginAttemptsKey(username)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		return l.client.Expire(ctx, key, l.window).Err()
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *RedisLoginLimiter) Reset(ctx context.Context, username string) error {
	return l.client.Del(ctx, loginAttemptsKey(username)).Err()
}
