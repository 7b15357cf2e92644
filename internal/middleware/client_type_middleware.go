package middleware

import (
	"studio-proof/internal/domain/session"
	"studio-proof/internal/services"

	"github.com/gin-gonic/gin"
)

// ClientTypeMiddleware reads the requester role from header. Only the exact value
// "photographer" grants the photographer role; everything else is a client.
func ClientTypeMiddleware(header string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := session.ParseRole(c.GetHeader(header))
		ctx := services.WithRole(c.Request.Context(), role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
