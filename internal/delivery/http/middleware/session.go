package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	SessionHeader     = "X-Session-ID"
	SessionContextKey = "session_id"
)

// RequireSession copies the X-Session-ID header into the gin context. The
// header is an opaque handle, not a credential; unknown ids are rejected by
// the session use case.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing " + SessionHeader + " header",
			})
			return
		}

		c.Set(SessionContextKey, sessionID)
		c.Next()
	}
}
