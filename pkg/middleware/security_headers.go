package middleware

import (
	"github.com/gin-gonic/gin"
)

// DefaultContentSecurityPolicy allows the inline scripts and styles the
// static landing pages ship with
const DefaultContentSecurityPolicy = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline' https:; img-src 'self' data: https:; font-src 'self' data: https:; connect-src 'self'; frame-ancestors 'none'"

// SecurityHeaders adds security-related HTTP headers to responses. HSTS is
// only sent when hsts is true, i.e. behind TLS in production.
func SecurityHeaders(hsts bool, csp string) gin.HandlerFunc {
	if csp == "" {
		csp = DefaultContentSecurityPolicy
	}
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=(), usb=()")
		h.Set("Content-Security-Policy", csp)

		if hsts {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
