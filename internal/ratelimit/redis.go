// Package ratelimit throttles authentication attempts with a Redis counter.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/tasktracker-server/internal/model"
)

const keyPrefix = "tasktracker:ratelimit:"

// fixedWindow increments the counter for KEYS[1], starting a new window of
// ARGV[1] milliseconds on the first hit, and returns {count, pttl}.
var fixedWindow = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	if ttl < 0 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
		ttl = tonumber(ARGV[1])
	end
	return {count, ttl}
`)

var _ model.RateLimiter = (*Limiter)(nil)

// Limiter allows at most limit hits per key in each window.
type Limiter struct {
	client redis.Scripter
	limit  int
	window time.Duration
}

func NewLimiter(client redis.Scripter, limit int, window time.Duration) *Limiter {
	return &Limiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

func (l *Limiter) Allow(ctx context.Context, key string) (model.RateLimitResult, error) {
	res, err := fixedWindow.Run(ctx, l.client, []string{keyPrefix + key}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return model.RateLimitResult{}, fmt.Errorf("failed to run rate limit script: %w", err)
	}
	if len(res) != 2 {
		return model.RateLimitResult{}, fmt.Errorf("unexpected rate limit reply length %d", len(res))
	}

	return evaluate(l.limit, res[0], time.Duration(res[1])*time.Millisecond), nil
}

func evaluate(limit int, count int64, ttl time.Duration) model.RateLimitResult {
	result := model.RateLimitResult{
		Allowed: count <= int64(limit),
		Limit:   limit,
	}
	if remaining := int64(limit) - count; remaining > 0 {
		result.Remaining = int(remaining)
	}
	if !result.Allowed {
		result.RetryAfter = ttl
	}
	return result
}

// NewRedisClient connects to addr and checks the server answers.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return client, nil
}
