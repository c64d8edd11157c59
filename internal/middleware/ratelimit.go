// Package middleware holds the gin middleware for the survey API: request
// logging, panic recovery, CORS, and intake rate limiting.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/logger"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/metrics"
)

// Limiter decides whether a client key may make another request.
type Limiter interface {
	// Allow records one request for key and reports whether it stays within
	// the window's limit.
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit throttles a route per client IP. A limiter backend error fails
// open: the request is allowed and the error logged, so a broken Redis never
// blocks survey intake.
func RateLimit(limiter Limiter, log logger.Logger, met *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn("Rate limiter unavailable, allowing request",
				logger.String("client_ip", c.ClientIP()),
				logger.Error(err),
			)
			c.Next()
			return
		}

		if !allowed {
			met.RateLimited.Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests. Please try again later.",
			})
			return
		}

		c.Next()
	}
}

// windowEntry tracks one client's request count within the current window.
type windowEntry struct {
	count     int
	expiresAt time.Time
}

// MemoryLimiter is an in-process fixed-window limiter. It is per-replica;
// use the Redis limiter when running more than one instance.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	max     int
	window  time.Duration
}

// NewMemoryLimiter creates a MemoryLimiter allowing max requests per window.
// A background goroutine evicts expired entries every window.
func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	l := &MemoryLimiter{
		entries: make(map[string]*windowEntry),
		max:     max,
		window:  window,
	}

	go func() {
		ticker := time.NewTicker(window)
		defer ticker.Stop()
		for range ticker.C {
			l.mu.Lock()
			now := time.Now()
			for key, entry := range l.entries {
				if now.After(entry.expiresAt) {
					delete(l.entries, key)
				}
			}
			l.mu.Unlock()
		}
	}()

	return l
}

// Allow implements Limiter.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	entry, exists := l.entries[key]
	if !exists || now.After(entry.expiresAt) {
		l.entries[key] = &windowEntry{count: 1, expiresAt: now.Add(l.window)}
		return true, nil
	}

	entry.count++
	return entry.count <= l.max, nil
}

// RedisLimiter is a fixed-window limiter shared across replicas via Redis
// INCR/EXPIRE.
type RedisLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
	prefix string
}

// NewRedisLimiter creates a RedisLimiter allowing max requests per window.
func NewRedisLimiter(client *redis.Client, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		max:    max,
		window: window,
		prefix: "ratelimit:submit:",
	}
}

// Allow implements Limiter. The first request in a window creates the counter
// with an expiry; subsequent requests increment it.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := l.prefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("increment rate limit key: %w", err)
	}
	if count == 1 {
		if expireErr := l.client.Expire(ctx, redisKey, l.window).Err(); expireErr != nil {
			return false, fmt.Errorf("set rate limit expiry: %w", expireErr)
		}
	}

	return count <= int64(l.max), nil
}
