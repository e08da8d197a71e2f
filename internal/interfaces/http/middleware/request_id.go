// Package middleware holds the gin middleware chain for the API server:
// request IDs, structured request logging, panic recovery, CORS, and
// Prometheus instrumentation.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID is the canonical request-ID header, propagated from the
// caller when present and echoed on every response.
const HeaderRequestID = "X-Request-ID"

const contextKeyRequestID = "request_id"

// RequestID attaches a request ID to every request, generating one when the
// caller did not supply it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextKeyRequestID, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID returns the request ID attached by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}
