package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"stocktake/internal/core/apperror"
	"stocktake/pkg/logger"
)

// RateLimit limits requests per client IP.
// Store failures let the request through; limits are advisory when the store is down.
func RateLimit(l *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		lctx, err := l.Get(c.Request.Context(), ip)
		if err != nil {
			logger.Warn(c.Request.Context(), "rate limit store unavailable",
				"ip", ip,
				"error", err,
			)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			logger.Warn(c.Request.Context(), "rate limit exceeded",
				"ip", ip,
				"limit", lctx.Limit,
			)
			_ = c.Error(apperror.NewRateLimited(lctx.Limit))
			c.Abort()
			return
		}

		c.Next()
	}
}
