package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neuroeducatimo/landing/pkg/logger"
	"go.uber.org/zap"
)

// quietPaths are polled by probes and scrapers and only logged on failure
var quietPaths = map[string]bool{
	"/healthz":      true,
	"/health/ready": true,
	"/metrics":      true,
}

// RequestLogger logs HTTP requests
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		statusCode := c.Writer.Status()
		if quietPaths[path] && statusCode < 400 {
			return
		}

		fields := []zap.Field{
			zap.Int("status", statusCode),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Int("size", c.Writer.Size()),
			zap.Duration("latency", time.Since(start)),
		}

		reqLogger := logger.WithContext(c.Request.Context())

		switch {
		case len(c.Errors) > 0:
			reqLogger.Error("Request completed with errors", append(fields, zap.String("errors", strings.TrimSpace(c.Errors.String())))...)
		case statusCode >= 500:
			reqLogger.Error("Request failed", fields...)
		case statusCode >= 400:
			reqLogger.Warn("Request rejected", fields...)
		default:
			reqLogger.Info("Request completed", fields...)
		}
	}
}
