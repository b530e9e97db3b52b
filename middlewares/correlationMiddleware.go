package middlewares

import (
	"bitbucket.org/mmdatafocus/hours_backend/appctx"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CorrelationMiddleware attaches a correlation id to every request context,
// generating one when the client did not send x-correlation-id.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(appctx.WithString(c.Request.Context(), appctx.ContextKeyCorrelationId, cid))
		c.Header("x-correlation-id", cid)
		c.Next()
	}
}
