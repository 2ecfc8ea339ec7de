package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/officinadeltaglio/barbershop-api/internal/httperr"
)

// RateLimit is a fixed-window counter keyed by client IP, applied to
// the public booking endpoint. If redis is unreachable the request is
// let through: losing the limiter must not take bookings down with it.
func RateLimit(rdb *redis.Client, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rl:book:" + c.ClientIP()

		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Printf("rate limit: redis unavailable: %v", err)
			c.Next()
			return
		}

		if count == 1 {
			if err := rdb.Expire(c.Request.Context(), key, window).Err(); err != nil {
				log.Printf("rate limit: expire failed: %v", err)
			}
		}

		if count > int64(max) {
			httperr.TooManyRequests(c, httperr.CodeRateLimited,
				"Troppi tentativi, riprova tra qualche minuto.")
			c.Abort()
			return
		}

		c.Next()
	}
}
