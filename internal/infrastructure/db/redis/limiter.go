package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter counts failed logins per key inside a fixed window.
// Key format: login:fail:<key>
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Blocked reports whether key has reached the failure limit.
func (l *LoginLimiter) Blocked(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Get(ctx, failKey(key)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("login limiter get: %w", err)
	}
	return n >= l.maxAttempts, nil
}

// RecordFailure increments the counter. The window starts at the first
// failure and is not extended by later ones.
func (l *LoginLimiter) RecordFailure(ctx context.Context, key string) error {
	k := failKey(key)
	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("login limiter incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return fmt.Errorf("login limiter expire: %w", err)
		}
	}
	return nil
}

func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, failKey(key)).Err(); err != nil {
		return fmt.Errorf("login limiter reset: %w", err)
	}
	return nil
}

func failKey(key string) string { return "login:fail:" + key }
