package middleware

import (
	"net/http"
	"time"

	"studio-proof/pkg/logger"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware writes one access line per request. Server errors log at
// error level, client errors at warn. The line carries the matched route, the
// response size and the client IP; request id and role come from the context.
func LoggingMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log := l
		if log == nil {
			log = logger.GetGlobalLogger()
		}
		if log == nil {
			return
		}

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()
		size := c.Writer.Size()
		if size < 0 {
			size = 0
		}

		const format = "%s %s %d %dB %s %s"
		args := []interface{}{c.Request.Method, route, status, size, time.Since(start).String(), c.ClientIP()}

		reqLog := log.WithContext(c.Request.Context())
		switch {
		case status >= http.StatusInternalServerError:
			reqLog.Errorf(format, args...)
		case status >= http.StatusBadRequest:
			reqLog.Warnf(format, args...)
		default:
			reqLog.Infof(format, args...)
		}
	}
}
