package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/adli-inc/adli/internal/shared/logger"
	"github.com/adli-inc/adli/internal/shared/utils"
)

// RateLimiter throttles anonymous endpoints per client IP with a fixed
// window counter shared through Redis.
type RateLimiter struct {
	redisClient *redis.Client
	scope       string
	limit       int
	window      time.Duration
	now         func() time.Time
	logger      logger.Interface
}

func NewRateLimiter(redisClient *redis.Client, scope string, limit int, window time.Duration, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		redisClient: redisClient,
		scope:       scope,
		limit:       limit,
		window:      window,
		now:         time.Now,
		logger:      logger,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := rl.now()
		windowSecs := int64(rl.window.Seconds())
		bucket := now.Unix() / windowSecs
		key := fmt.Sprintf("adli:ratelimit:%s:%s:%d", rl.scope, c.ClientIP(), bucket)

		var incr *redis.IntCmd
		_, err := rl.redisClient.TxPipelined(c.Request.Context(), func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(c.Request.Context(), key)
			pipe.ExpireNX(c.Request.Context(), key, rl.window+time.Second)
			return nil
		})
		if err != nil {
			// fail open
			rl.logger.Warnw("rate limiter unavailable", "scope", rl.scope, "error", err)
			c.Next()
			return
		}

		count := incr.Val()
		remaining := int64(rl.limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(rl.limit) {
			retryAfter := (bucket+1)*windowSecs - now.Unix()
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			rl.logger.Infow("rate limit hit", "scope", rl.scope, "client_ip", c.ClientIP(), "count", count)
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
