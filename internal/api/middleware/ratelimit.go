package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/appservers/customer-api/internal/api/metrics"
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects callers that exceed the limiter's window with 429, using
// the client IP as the key. Limiter errors fail open: an unreachable Redis
// must not take the API down with it.
func RateLimit(limiter Limiter, serverName string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Msg("rate limit check failed, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitRejectedTotal.Inc()
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"success": false,
					"error":   "too many requests, try again later",
					"server":  serverName,
				})
			}
			return next(c)
		}
	}
}
