package middlewares

import (
	"time"

	"bitbucket.org/mmdatafocus/hours_backend/appctx"
	"bitbucket.org/mmdatafocus/hours_backend/config"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LoggingMiddleware emits one structured line per request.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		cid, _ := appctx.GetString(c.Request.Context(), appctx.ContextKeyCorrelationId)
		fields := logrus.Fields{
			"method":        c.Request.Method,
			"path":          c.Request.URL.Path,
			"status":        c.Writer.Status(),
			"durationMs":    time.Since(start).Milliseconds(),
			"correlationId": cid,
		}
		if sid, ok := appctx.GetString(c.Request.Context(), appctx.ContextKeySessionId); ok {
			fields["sessionId"] = sid
		}
		config.GetLogger().WithFields(fields).Info("request completed")
	}
}
