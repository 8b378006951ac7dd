package middleware

import (
	"fmt"
	"runtime/debug"

	"finora-backend/internal/errors"
	"finora-backend/internal/handlers"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// PanicRecovery recovers from panics and answers with SYSTEM_001
func PanicRecovery(logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				logger.WithFields(logrus.Fields{
					"trace_id":    GetTraceID(c),
					"panic":       fmt.Sprintf("%v", r),
					"stack_trace": string(debug.Stack()),
					"path":        c.Request().URL.Path,
					"method":      c.Request().Method,
				}).Error("Panic recovered")

				if c.Response().Committed {
					return
				}
				err = handlers.SendError(c, errors.SystemInternalError)
			}()

			return next(c)
		}
	}
}
