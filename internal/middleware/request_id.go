package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mrnoori/projecthub/internal/constants"
)

// RequestID injects a unique request id into the context and response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set(constants.ContextKeyRequestID, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
