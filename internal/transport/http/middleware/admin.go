package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"userhub/internal/transport/http/response"
)

// AdminOnly must run after AuthJWT.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := UserFromContext(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, response.MsgUnauthorized)
			c.Abort()
			return
		}
		if !user.IsAdmin {
			response.Error(c, http.StatusForbidden, "Access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}
