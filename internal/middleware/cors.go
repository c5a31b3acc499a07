package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows allowedOrigin to call the API and answers preflight
// requests with 204. tokenHeader is added to the allowed request headers.
func CORSMiddleware(allowedOrigin, tokenHeader string) gin.HandlerFunc {
	allowHeaders := "Content-Type, " + RequestIDHeader
	if tokenHeader != "" {
		allowHeaders += ", " + tokenHeader
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", allowedOrigin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", allowHeaders)
		h.Set("Access-Control-Expose-Headers", RequestIDHeader)
		h.Set("Access-Control-Max-Age", "86400")
		// Browsers reject credentials with a wildcard origin.
		if allowedOrigin != "*" {
			h.Set("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
