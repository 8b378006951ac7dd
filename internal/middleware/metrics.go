package middleware

import (
	"finora-backend/internal/handlers"
	"finora-backend/internal/services"

	"github.com/labstack/echo/v4"
)

// APIErrorMetrics makes metrics available to the handler error helpers so
// error responses written directly by handlers and middleware are counted
// alongside those that reach the HTTP error handler.
func APIErrorMetrics(metrics services.MetricsRecorderInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(handlers.MetricsContextKey, metrics)
			return next(c)
		}
	}
}
