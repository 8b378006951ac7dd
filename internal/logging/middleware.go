package logging

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	// LogDataContextKey is the echo context key holding the request's *LogData
	LogDataContextKey = "log_data"

	traceIDContextKey  = "trace_id"
	usernameContextKey = "username"
)

// RequestLogger attaches a LogData to every request and logs one entry when
// the request finishes. Handler errors are rendered through the echo error
// handler first so the logged status is the one the client saw.
func RequestLogger(logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			logData := NewLogData(logger)
			c.Set(LogDataContextKey, logData)

			endTimer := logData.AddTiming("duration_ms")
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			endTimer()

			req := c.Request()
			status := c.Response().Status
			logData.AddData("method", req.Method)
			logData.AddData("route", c.Path())
			logData.AddData("uri", req.RequestURI)
			logData.AddData("status", status)
			logData.AddData("remote_ip", c.RealIP())
			if traceID, ok := c.Get(traceIDContextKey).(string); ok {
				logData.AddData("trace_id", traceID)
			}
			if username, ok := c.Get(usernameContextKey).(string); ok {
				logData.AddData("user", username)
			}

			entry := logData.Log()
			switch {
			case err != nil && status >= http.StatusInternalServerError:
				entry.WithError(err).Error("Request.Error")
			case status >= http.StatusInternalServerError:
				entry.Error("Request.Error")
			case status >= http.StatusBadRequest:
				entry.Warn("Request.Complete")
			default:
				entry.Info("Request.Complete")
			}

			return nil
		}
	}
}

// FromContext returns the request's LogData. Outside the RequestLogger
// middleware it returns a LogData that discards its output.
func FromContext(c echo.Context) *LogData {
	if logData, ok := c.Get(LogDataContextKey).(*LogData); ok {
		return logData
	}

	discard := logrus.New()
	discard.Out = io.Discard
	return NewLogData(discard)
}

// GormWriter adapts a logrus logger to gorm's logger.Writer.
type GormWriter struct {
	Logger *logrus.Logger
}

func (w GormWriter) Printf(format string, args ...interface{}) {
	w.Logger.WithField("component", "gorm").Infof(format, args...)
}
