package middleware

import (
	"github.com/gin-gonic/gin"

	"praxis-cashier-api/internal/idgen"
)

const (
	TraceIDKey    = "trace_id"
	TraceIDHeader = "X-Trace-ID"
)

// Trace tags each request with a snowflake id, reusing an incoming
// X-Trace-ID when present.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" {
			traceID = idgen.TraceID()
		}
		c.Set(TraceIDKey, traceID)
		c.Writer.Header().Set(TraceIDHeader, traceID)
		c.Next()
	}
}
