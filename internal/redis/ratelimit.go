package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Key pattern: ratelimit:{ip}:client, one fixed window per minute.

// RateLimitConfig contains configuration for rate limiting
type RateLimitConfig struct {
	ClientLimit  int           // Max client requests per window
	ClientWindow time.Duration // Client rate limit window
}

// DefaultRateLimitConfig returns the per-minute client limit used when none is configured.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		ClientLimit:  120,
		ClientWindow: 60 * time.Second,
	}
}

// RateLimiter handles rate limiting using Redis
type RateLimiter struct {
	client *goredis.Client
	config RateLimitConfig
}

// RateLimitResult contains the result of a rate limit check
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
	Limit     int
}

// checkLimitScript increments and checks a counter atomically.
var checkLimitScript = goredis.NewScript(`
	local key = KEYS[1]
	local limit = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])

	local current = redis.call('GET', key)
	if current == false then
		current = 0
	else
		current = tonumber(current)
	end

	local ttl = redis.call('TTL', key)
	if ttl < 0 then
		ttl = window
	end

	if current < limit then
		redis.call('INCR', key)
		if ttl == window then
			redis.call('EXPIRE', key, window)
		end
		return {1, limit - current - 1, ttl}
	else
		return {0, 0, ttl}
	end
`)

func NewRateLimiter(client *goredis.Client, config RateLimitConfig) *RateLimiter {
	if config.ClientWindow <= 0 {
		config.ClientWindow = 60 * time.Second
	}
	return &RateLimiter{
		client: client,
		config: config,
	}
}

func clientKey(ip string) string {
	return fmt.Sprintf("ratelimit:%s:client", ip)
}

// AllowClient checks whether a client IP may make another request on the
// gallery routes.
func (r *RateLimiter) AllowClient(ctx context.Context, ip string) (*RateLimitResult, error) {
	return r.checkLimit(ctx, clientKey(ip), r.config.ClientLimit, r.config.ClientWindow)
}

// ResetClient clears the counter for an IP.
func (r *RateLimiter) ResetClient(ctx context.Context, ip string) error {
	return r.client.Del(ctx, clientKey(ip)).Err()
}

func (r *RateLimiter) checkLimit(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitResult, error) {
	result, err := checkLimitScript.Run(ctx, r.client, []string{key}, limit, int(window.Seconds())).Result()
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	resultSlice, ok := result.([]interface{})
	if !ok || len(resultSlice) < 3 {
		return nil, fmt.Errorf("unexpected rate limit result format")
	}

	allowed, _ := resultSlice[0].(int64)
	remaining, _ := resultSlice[1].(int64)
	ttl, _ := resultSlice[2].(int64)

	return &RateLimitResult{
		Allowed:   allowed == 1,
		Remaining: int(remaining),
		ResetIn:   time.Duration(ttl) * time.Second,
		Limit:     limit,
	}, nil
}
