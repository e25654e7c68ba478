package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/vibeapi/internal/observability"
)

// Metrics records request count, duration and in-flight gauge per route.
// A nil metrics handle disables recording.
func Metrics(m *observability.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		start := time.Now()
		m.RequestStart(ctx)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestEnd(ctx, c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
