package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrnoori/projecthub/internal/logger"
	redis "github.com/redis/go-redis/v9"

	apierrors "github.com/mrnoori/projecthub/internal/errors"
)

var redisClient *redis.Client

// InitRateLimiter initializes the shared Redis client used by RateLimit.
// With an empty addr, or when Redis is unreachable, the limiter stays
// disabled and requests pass through (fail-open keeps login available).
func InitRateLimiter(addr, password string) {
	if addr == "" {
		return
	}

	redisClient = redis.NewClient(&redis.Options{Addr: addr, Password: password})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Get().WithError(err).Warn("redis unreachable, rate limiting disabled")
		redisClient = nil
	}
}

// RateLimit is a fixed-window limiter keyed by client IP, implemented with
// Redis INCR/EXPIRE. Applied to the credential endpoints to slow down
// password guessing.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		key := "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + c.ClientIP()
		ctx := c.Request.Context()

		val, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			// fail-open on Redis errors
			c.Next()
			return
		}

		if val == 1 {
			redisClient.Expire(ctx, key, window)
		}

		if val > int64(maxRequests) {
			apierrors.RespondWithError(c, 429,
				apierrors.NewAPIError("RATE_LIMITED", "Too many attempts, try again later"))
			c.Abort()
			return
		}

		c.Next()
	}
}
