package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// =============================================================================
// Scripts
// =============================================================================

// fixedWindowScript counts a hit and starts the window on the first one.
// KEYS[1] = counter key, ARGV[1] = window in milliseconds.
var fixedWindowScript = redis.NewScript(`
	local current = redis.call('INCR', KEYS[1])
	if current == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	return current
`)

// =============================================================================
// Constants
// =============================================================================

const (
	RedisRateLimitKeyPrefix = "rate_limit:"
	RedisDenylistKeyPrefix  = "token:blacklist:"

	redisGuardTimeout = 2 * time.Second
)

// =============================================================================
// Rate limiter
// =============================================================================

// RateLimiter is a fixed-window counter shared by every API instance
type RateLimiter struct {
	redisClient *redis.Client
	limit       int
	window      time.Duration
}

func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{redisClient: redisClient, limit: limit, window: window}
}

// Allow records a hit for key and reports whether it is within the limit
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, redisGuardTimeout)
	defer cancel()

	count, err := fixedWindowScript.Run(ctx, l.redisClient,
		[]string{RedisRateLimitKeyPrefix + key},
		l.window.Milliseconds(),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("rate limit script: %w", err)
	}
	return count <= int64(l.limit), nil
}

// =============================================================================
// Token deny-list
// =============================================================================

// TokenDenylist holds revoked access token ids until they would expire anyway
type TokenDenylist struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewTokenDenylist(redisClient *redis.Client, ttl time.Duration) *TokenDenylist {
	return &TokenDenylist{redisClient: redisClient, ttl: ttl}
}

func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string) error {
	return d.redisClient.Set(ctx, RedisDenylistKeyPrefix+tokenID, 1, d.ttl).Err()
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, redisGuardTimeout)
	defer cancel()

	n, err := d.redisClient.Exists(ctx, RedisDenylistKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
