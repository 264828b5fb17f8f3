package middleware

import (
	"context"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"assethub/pkg/api"

	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware converts panics into a generic 500 response. Details
// stay in the server log only.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[Recovery] Panic recovered: %v\n", err)
				log.Printf("[Recovery] Stack trace: %s\n", debug.Stack())

				api.Error(c, http.StatusInternalServerError, "Internal Server Error")
			}
		}()

		c.Next()
	}
}

// TimeoutMiddleware bounds request handling time.
func TimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		done := make(chan struct{})

		go func() {
			c.Next()
			close(done)
		}()

		select {
		case <-done:
			return
		case <-ctx.Done():
			api.Error(c, http.StatusGatewayTimeout, "Request Timeout")
			return
		}
	}
}
