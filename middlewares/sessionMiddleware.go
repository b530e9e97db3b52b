package middlewares

import (
	"bitbucket.org/mmdatafocus/hours_backend/appctx"
	"github.com/gin-gonic/gin"
)

// SessionIdMiddleware copies the :id route parameter into the request
// context so downstream logging can attribute work to a session.
func SessionIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.Param("id"); id != "" {
			c.Request = c.Request.WithContext(appctx.WithString(c.Request.Context(), appctx.ContextKeySessionId, id))
		}
		c.Next()
	}
}
