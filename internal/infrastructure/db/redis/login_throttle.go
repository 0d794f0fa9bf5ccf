package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

// LoginThrottle counts failed logins per email in a fixed window.
// Key format: login:fail:<email>
type LoginThrottle struct {
	client      redis.Cmdable
	maxAttempts int64
	window      time.Duration
}

// NewLoginThrottle wraps client. Non-positive limits fall back to 5 attempts
// per 15 minutes.
func NewLoginThrottle(client redis.Cmdable, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginThrottle{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Allow reports whether another attempt for email is permitted.
func (t *LoginThrottle) Allow(ctx context.Context, email string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(email)).Int64()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n < t.maxAttempts, nil
}

// RecordFailure bumps the failure counter. The window starts at the first
// failure and is not extended by later ones. SET NX EX and INCR run in one
// MULTI/EXEC so the counter never exists without a TTL.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) error {
	key := t.key(email)
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, t.window)
		pipe.Incr(ctx, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("throttle record failure: %w", err)
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	if err := t.client.Del(ctx, t.key(email)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

func (t *LoginThrottle) key(email string) string {
	return "login:fail:" + email
}
