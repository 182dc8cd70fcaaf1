package middleware

import (
	"strconv"
	"time"

	"smart-bulb-backend/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency per matched route.
// Requests that match no route are labelled "unmatched".
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.RequestCounter.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
