package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/saima-salar/blog-website-with-sanity-schema/internal/pkg/response"
)

const (
	rateLimitMax    = 10
	rateLimitWindow = 10 * time.Second
)

// RateLimit enforces a per-IP sliding-window limit backed by Redis, meant for
// the unauthenticated comment form. Without Redis it degrades to a no-op so a
// missing cache never takes the endpoint down.
func RateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		window := time.Now().Unix() / int64(rateLimitWindow/time.Second)
		key := fmt.Sprintf("blog:rate_limit:%s:%d", ip, window)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// Redis trouble must not block readers.
			c.Next()
			return
		}
		if count == 1 {
			rdb.PExpire(ctx, key, rateLimitWindow+time.Second)
		}

		if count > rateLimitMax {
			response.TooManyRequests(c, "Too many requests, slow down")
			return
		}

		c.Next()
	}
}
