package middleware

import (
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/neuroeducatimo/landing/pkg/logger"
)

// CorrelationIDHeader carries the request ID in both directions
const CorrelationIDHeader = "X-Request-ID"

const maxCorrelationIDLen = 128

// CorrelationID reuses a well-formed inbound X-Request-ID or generates one.
// The ID is echoed in the response, attached to the request context for
// logging and tagged on the Sentry scope.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(CorrelationIDHeader)
		if !validCorrelationID(id) {
			id = uuid.NewString()
		}

		ctx := logger.ContextWithCorrelationID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(CorrelationIDHeader, id)

		if hub := sentry.GetHubFromContext(ctx); hub != nil {
			hub.Scope().SetTag("request_id", id)
		}

		c.Next()
	}
}

// validCorrelationID accepts short IDs made of URL-safe characters so client
// input cannot break log lines.
func validCorrelationID(id string) bool {
	if id == "" || len(id) > maxCorrelationIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == ':':
		default:
			return false
		}
	}
	return true
}
