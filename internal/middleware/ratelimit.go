package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/AnshRaj112/aed-backend/pkg/clientip"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	// AuthRateLimitWindow is the fixed window for auth route counters.
	AuthRateLimitWindow = 120 * time.Second
	// AuthRateLimitMaxRequests is how many auth requests one IP may make per window.
	AuthRateLimitMaxRequests = 25
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting
	RateLimitKeyPrefix = "ratelimit:auth:"
)

// Limiter decides whether key may make another request.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, remaining int, err error)
}

// RedisLimiter is a fixed-window counter shared by every server instance.
type RedisLimiter struct {
	client *redis.Client
	window time.Duration
	limit  int
}

func NewRedisLimiter(client *redis.Client, window time.Duration, limit int) *RedisLimiter {
	return &RedisLimiter{client: client, window: window, limit: limit}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	k := RateLimitKeyPrefix + key
	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("incr %s: %w", k, err)
	}
	if count == 1 {
		// First request in this window
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("expire %s: %w", k, err)
		}
	}
	remaining := l.limit - int(count)
	if remaining < 0 {
		return false, 0, nil
	}
	return true, remaining, nil
}

var authPaths = map[string]bool{
	"/api/auth/login":    true,
	"/api/auth/register": true,
}

// AuthRateLimit applies limiter to the login and register routes only.
// Limiter errors let the request through (fail open).
func AuthRateLimit(limiter Limiter, limit int, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientip.RealClientIP(r)
			allowed, remaining, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				log.Warn().Err(err).Str("ip", ip).Msg("rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !allowed {
				writeError(w, http.StatusTooManyRequests, "Too many login attempts. Please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
