package httpx

import (
	"strconv"
	"time"

	"github.com/Gunvolt24/rapid_express/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware: latency HTTP-запросов по шаблону маршрута (без id в метке).
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
