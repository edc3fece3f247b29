package middleware

import "github.com/labstack/echo/v4"

// ServerHeader stamps every response with X-Server-Name so callers behind the
// load balancer can tell which replica answered.
func ServerHeader(name string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-Server-Name", name)
			return next(c)
		}
	}
}
