package middleware

import (
	"net/http"

	"studio-proof/internal/transport/httpdto"
	"studio-proof/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns errors attached to the gin context into the response envelope
// when the handler did not write a body itself.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.WithContext(c.Request.Context()).Errorf("request error: %s", err.Error())
		}
		if c.Writer.Written() {
			return
		}
		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			status = httpdto.StatusFromError(err)
		}
		c.JSON(status, httpdto.NewErrorResponse(httpdto.MessageFromError(err)))
	}
}
