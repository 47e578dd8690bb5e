package logger

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
)

// EchoMiddleware creates request-logging middleware for the Echo framework
func EchoMiddleware(zapLogger *ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			path := c.Request().URL.Path
			raw := c.Request().URL.RawQuery

			err := next(c)

			latency := time.Since(start)
			statusCode := c.Response().Status
			method := c.Request().Method

			if raw != "" {
				path = path + "?" + raw
			}

			userID := "anonymous"
			if id := c.Get("user_id"); id != nil {
				userID = fmt.Sprintf("%v", id)
			}

			fields := []Field{
				String("method", method),
				String("path", path),
				Int("status", statusCode),
				Duration("latency", latency),
				String("client_ip", c.RealIP()),
				String("user_id", userID),
				String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			}
			if err != nil {
				fields = append(fields, Err(err))
			}

			switch {
			case statusCode >= 500:
				zapLogger.Error("HTTP request", fields...)
			case statusCode >= 400:
				zapLogger.Warn("HTTP request", fields...)
			default:
				zapLogger.Info("HTTP request", fields...)
			}

			return err
		}
	}
}
