package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	logger "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Logger"
)

const rateLimitKeyPrefix = "ratelimit:"

// RateLimitStore counts hits for a key within a fixed window
type RateLimitStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisRateLimitStore keeps counters in Redis with INCR + EXPIRE
type RedisRateLimitStore struct {
	client *redis.Client
}

func NewRedisRateLimitStore(client *redis.Client) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client}
}

func (s *RedisRateLimitStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return count, err
		}
		return count, nil
	}
	// Repair a counter that lost its TTL
	if ttl, err := s.client.TTL(ctx, key).Result(); err == nil && ttl < 0 {
		s.client.Expire(ctx, key, window)
	}
	return count, nil
}

// RateLimiter limits requests per client IP for one route scope
type RateLimiter struct {
	store  RateLimitStore
	limit  int
	window time.Duration
	logger *logger.Logger
}

func NewRateLimiter(store RateLimitStore, limit int, window time.Duration, logger *logger.Logger) *RateLimiter {
	return &RateLimiter{
		store:  store,
		limit:  limit,
		window: window,
		logger: logger.WithComponent("rate_limit"),
	}
}

// Limit returns the middleware for scope. A nil limiter lets everything through.
func (l *RateLimiter) Limit(scope string) gin.HandlerFunc {
	if l == nil || l.store == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := rateLimitKeyPrefix + scope + ":" + c.ClientIP()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		count, err := l.store.Increment(ctx, key, l.window)
		if err != nil {
			l.logger.Logger.Warn().Err(err).Str("scope", scope).Msg("Rate limit store unavailable, allowing request")
			c.Next()
			return
		}

		remaining := int64(l.limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(l.limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(l.limit) {
			c.Header("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"msg": "Too many requests"})
			return
		}
		c.Next()
	}
}
