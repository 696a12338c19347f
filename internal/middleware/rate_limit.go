package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/pageza/menuqr/backend/internal/types"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// KeyFunc picks the bucket a request is counted against. An empty key
// skips the limit.
type KeyFunc func(c *gin.Context) string

// RateLimiter is a fixed-window request counter in Redis
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	log    *logrus.Entry
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig, log *logrus.Entry) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
		log:    log,
	}
}

// NewIngestionRateLimiter limits menu generation and uploads to 20 per user per hour.
func NewIngestionRateLimiter(redisClient *redis.Client, log *logrus.Entry) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     20,
		KeyPrefix: "rate_limit:ingestion",
	}, log)
}

// NewChatRateLimiter limits chat to 30 messages per client and restaurant
// every 10 minutes.
func NewChatRateLimiter(redisClient *redis.Client, log *logrus.Entry) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    10 * time.Minute,
		Limit:     30,
		KeyPrefix: "rate_limit:chat",
	}, log)
}

// ByUser counts requests per authenticated user.
func ByUser(c *gin.Context) string {
	id, ok := UserID(c)
	if !ok {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}

// ByClientAndParam counts requests per client IP and path parameter.
func ByClientAndParam(param string) KeyFunc {
	return func(c *gin.Context) string {
		return c.ClientIP() + ":" + c.Param(param)
	}
}

// Middleware returns a Gin middleware that enforces the limit per key.
// Redis failures let the request through.
func (rl *RateLimiter) Middleware(key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		k := key(c)
		if k == "" {
			c.Next()
			return
		}

		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), k)
		if err != nil {
			rl.log.WithError(err).Warn("rate limit check failed")
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		// Set rate limit headers
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			retry := int(time.Until(resetTime).Seconds())
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, types.ErrorResponse{
				Message: fmt.Sprintf("Too many requests. The limit is %d per %v.", rl.config.Limit, rl.config.Window),
			})
			return
		}

		c.Next()
	}
}

// IsAllowed counts a request against key.
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	now := time.Now()
	windowStart := now.Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	resetTime := windowStart.Add(rl.config.Window)
	return count <= rl.config.Limit, remaining, resetTime, nil
}
