package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"nexusmarket/internal/infrastructure/ratelimit"
	"nexusmarket/pkg/logger"
)

// RateLimitMiddleware wraps the shared token-bucket limiter. The bucket key
// is the authenticated uid when available, the client IP otherwise.
type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if uid, ok := c.Get("uid").(string); ok && uid != "" {
				key = uid
			}

			allowed, wait := m.limiter.Allow(key, action)
			if !allowed {
				logger.Warn("Rate limit hit for %s on %s", key, action)
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error":       "Rate limit exceeded",
					"retry_after": int(wait / time.Second),
				})
			}

			return next(c)
		}
	}
}
