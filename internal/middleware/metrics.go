package middleware

import (
	"strconv"
	"time"

	"bookstore-management/internal/observability/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request count and latency labelled by route template,
// so /api/user/1 and /api/user/2 share a series.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
