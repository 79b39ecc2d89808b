package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/neuroeducatimo/landing/pkg/common"
)

// MaxBodySize limits the request body size. Multipart uploads are skipped;
// the upload handler enforces its own limit.
func MaxBodySize(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || maxSize <= 0 || strings.HasPrefix(c.ContentType(), "multipart/") {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxSize {
			tooLarge(c)
			return
		}

		// Wrap the body with a size limiter and read it.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				tooLarge(c)
				return
			}
			common.ErrorResponse(c, http.StatusBadRequest, "failed to read request body")
			c.Abort()
			return
		}

		// Restore the body so downstream handlers can read it.
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		c.Next()
	}
}

func tooLarge(c *gin.Context) {
	common.ErrorResponse(c, http.StatusRequestEntityTooLarge, "request body too large")
	c.Abort()
}
