package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rich-Bam/Time-2026-sub001/pkg/response"
)

// BodyLimit caps request body size.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10001, "request body too large")
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
