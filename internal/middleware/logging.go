package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request with its route, status, user and
// duration. 5xx responses are logged as errors, 4xx as warnings.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"user_id", UserID(c),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}

		switch {
		case status >= 500:
			slog.Error("HTTP request failed", attrs...)
		case status >= 400:
			slog.Warn("HTTP request rejected", attrs...)
		default:
			slog.Info("HTTP request", attrs...)
		}
	}
}
