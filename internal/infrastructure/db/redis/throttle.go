package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	attemptsKeyPrefix = "lockout:attempts:"
	lockoutKeyPrefix  = "lockout:until:"

	defaultMaxAttempts   = 5
	defaultLockoutWindow = 15 * time.Minute
)

// LoginThrottle counts failed login attempts per key and escalates to a
// timed lockout once the threshold is crossed. Both the attempt counter and
// the lockout marker expire on their own, so a quiet key always heals.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultLockoutWindow
	}
	return &LoginThrottle{client: client, maxAttempts: maxAttempts, window: window}
}

// Status reports whether key is currently locked out and for how long.
func (t *LoginThrottle) Status(ctx context.Context, key string) (bool, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ttl, err := t.client.TTL(ctx, lockoutKeyPrefix+key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("throttle status: %w", err)
	}
	// TTL returns a negative duration when the key is missing or unexpiring.
	if ttl <= 0 {
		return false, 0, nil
	}
	return true, ttl, nil
}

// RecordFailure increments the attempt counter and, when the threshold is
// reached, plants the lockout marker. Returns whether key is now locked.
func (t *LoginThrottle) RecordFailure(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	attemptsKey := attemptsKeyPrefix + key

	count, err := t.client.Incr(ctx, attemptsKey).Result()
	if err != nil {
		return false, fmt.Errorf("throttle incr: %w", err)
	}
	// Set the window on first failure only, so the counter does not slide.
	if count == 1 {
		if err := t.client.Expire(ctx, attemptsKey, t.window).Err(); err != nil {
			return false, fmt.Errorf("throttle expire: %w", err)
		}
	}

	if count < int64(t.maxAttempts) {
		return false, nil
	}

	if err := t.client.Set(ctx, lockoutKeyPrefix+key, "1", t.window).Err(); err != nil {
		return false, fmt.Errorf("throttle lock: %w", err)
	}
	return true, nil
}

// Reset clears both the attempt counter and any active lockout for key.
func (t *LoginThrottle) Reset(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := t.client.Del(ctx, attemptsKeyPrefix+key, lockoutKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}
