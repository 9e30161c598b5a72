package middleware

import (
	"context"
	"fmt"
	"time"

	"gomarket/internal/utils"
	"gomarket/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RateLimitStore is the counter backend, satisfied by *cache.RedisCache.
type RateLimitStore interface {
	Increment(ctx context.Context, key string) (int64, error)
	SetExpire(ctx context.Context, key string, expiration time.Duration) error
}

// RateLimitMiddleware throttles redemption attempts per client IP with a
// fixed Redis window. A Redis outage fails open: slowing attackers is not
// worth refusing legitimate pickups.
func RateLimitMiddleware(redis RateLimitStore, log *logger.Logger, scope string, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", scope, c.ClientIP())

		count, err := redis.Increment(c.Request.Context(), key)
		if err != nil {
			log.WithError(err).Warn("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		if count == 1 {
			if err := redis.SetExpire(c.Request.Context(), key, window); err != nil {
				log.WithError(err).Warn("Failed to set rate limit window")
			}
		}

		if count > limit {
			utils.TooManyRequestsResponse(c, utils.ErrTooManyAttempts)
			c.Abort()
			return
		}

		c.Next()
	}
}
