package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger writes one access line per request; requests that recorded
// gin errors or ended with a 5xx go to errorLog.
func RequestLogger(accessLog, errorLog *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		entry := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"ip":         c.ClientIP(),
			"latency":    latency.String(),
			"user-agent": c.Request.UserAgent(),
			"trace_id":   c.GetString(TraceIDKey),
		}

		if len(c.Errors) > 0 || c.Writer.Status() >= 500 {
			errorLog.WithFields(entry).Error(c.Errors.String())
		} else {
			accessLog.WithFields(entry).Info("request completed")
		}
	}
}
