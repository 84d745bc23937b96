package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts   = 5
	defaultAttemptWindow = 15 * time.Minute
)

// LoginLimiter throttles repeated failed logins per key, backed by Redis.
// Key format: login_attempts:<username>
type LoginLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client, max int, window time.Duration) *LoginLimiter {
	if max <= 0 {
		max = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultAttemptWindow
	}
	return &LoginLimiter{client: client, max: max, window: window}
}

// TooMany reports whether the key has reached the failure limit inside the
// current window.
func (l *LoginLimiter) TooMany(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(key)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("login throttle check: %w", err)
	}
	return n >= l.max, nil
}

// RecordFailure increments the failure counter; the first failure starts the
// expiry window.
func (l *LoginLimiter) RecordFailure(ctx context.Context, key string) error {
	k := l.key(key)
	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("login throttle incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return fmt.Errorf("login throttle expire: %w", err)
		}
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.key(key)).Err()
}

func (l *LoginLimiter) key(key string) string {
	return fmt.Sprintf("login_attempts:%s", key)
}
