package httpx

import (
	"net/http"
	"time"

	"github.com/Gunvolt24/rapid_express/internal/ports"
	"github.com/gin-gonic/gin"
)

// quietRoutes: служебные маршруты, которые опрашиваются постоянно и в лог не пишутся.
var quietRoutes = map[string]struct{}{"/metrics": {}, "/ping": {}}

// RequestLogger: строка access-лога на запрос. Уровень зависит от статуса:
// 5xx: error, 4xx: warn, остальное: info.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if _, quiet := quietRoutes[route]; quiet {
			return
		}
		if route == "" {
			route = c.Request.URL.Path
		}

		// контекст берётся после c.Next: requireAuth мог добавить user_id, логгер выведет его сам
		ctx := c.Request.Context()
		status := c.Writer.Status()

		logf := log.Infof
		switch {
		case status >= http.StatusInternalServerError:
			logf = log.Errorf
		case status >= http.StatusBadRequest:
			logf = log.Warnf
		}
		logf(ctx, "http %s %s status=%d ip=%s latency=%s bytes=%d",
			c.Request.Method, route, status, c.ClientIP(), time.Since(start), c.Writer.Size())
	}
}
