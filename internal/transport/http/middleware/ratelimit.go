package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive/internal/metrics"
	"github.com/taskhive/taskhive/internal/ratelimit"
)

const errTooManyRequests = "Too many requests, please try again later."

// RateLimit caps request volume per client IP using the given store.
// group names the route group in logs, metrics and the store key space.
// Store failures fail open: a broken limiter must not take the API down.
func RateLimit(group string, store ratelimit.Store, logger *slog.Logger) gin.HandlerFunc {
	log := logger.With("component", "ratelimit", "group", group)

	return func(c *gin.Context) {
		dec, err := store.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.ErrorContext(c.Request.Context(), "limiter store", "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(dec.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(dec.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(dec.Reset.Unix(), 10))

		if !dec.Allowed {
			metrics.RateLimitedTotal.WithLabelValues(group).Inc()
			retryAfter := int(dec.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": errTooManyRequests})
			return
		}

		c.Next()
	}
}
