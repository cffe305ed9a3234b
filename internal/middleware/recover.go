package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"praxis-cashier-api/internal/constant"
	"praxis-cashier-api/internal/utils"
)

// Recover turns a panic into a JSON 500 so callers never see a stack trace.
func Recover(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(logrus.Fields{
					"path":     c.Request.URL.Path,
					"trace_id": c.GetString(TraceIDKey),
					"panic":    r,
				}).Error(string(debug.Stack()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, utils.Response{
					OK:      false,
					Error:   constant.MarkerInternalError,
					TraceID: c.GetString(TraceIDKey),
				})
			}
		}()
		c.Next()
	}
}
