package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zonagamer/console/internal/pkg/logger"
)

// RequestLoggerMiddleware logs every request served by the status endpoints
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			path := c.Request().URL.Path
			if raw := c.Request().URL.RawQuery; raw != "" {
				path = path + "?" + raw
			}

			err := next(c)

			latency := time.Since(start)
			status := c.Response().Status

			fields := []logger.Field{
				logger.Int("status", status),
				logger.String("method", c.Request().Method),
				logger.String("path", path),
				logger.String("client_ip", c.RealIP()),
				logger.Duration("latency", latency),
			}

			switch {
			case status >= 500:
				logger.Error("request failed", fields...)
			case status >= 400:
				logger.Warn("request rejected", fields...)
			default:
				logger.Debug("request served", fields...)
			}

			return err
		}
	}
}
