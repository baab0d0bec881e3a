package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"userhub/internal/model"
	"userhub/internal/pkg/jwtutil"
	"userhub/internal/transport/http/response"
)

const (
	ContextUserKey   = "authUser"
	ContextUserIDKey = "authUserID"
	ContextTokenKey  = "authToken"
)

// UserResolver maps verified token claims back to a stored user record.
type UserResolver interface {
	ResolveByEmail(ctx context.Context, email string) (*model.User, error)
}

// AuthJWT gates protected routes. It runs to a terminal decision before any
// downstream handler executes: 401 without or with a bad token, 404 when the
// token subject no longer exists, otherwise the resolved user (digest never
// attached), the raw token and the user ID land on the request context.
func AuthJWT(secret string, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "Unauthorized, token not found")
			c.Abort()
			return
		}

		// Tolerates both "Bearer <token>" and a bare token, like the scheme
		// strip the frontend always sent through.
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		if raw == "" {
			response.Error(c, http.StatusUnauthorized, "Unauthorized, token not found")
			c.Abort()
			return
		}

		claims, err := jwtutil.ParseToken(secret, raw)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, response.MsgUnauthorized)
			c.Abort()
			return
		}

		user, err := users.ResolveByEmail(c.Request.Context(), claims.Email)
		if err != nil {
			log.Printf("auth gate user lookup failed: %v", err)
			response.Error(c, http.StatusInternalServerError, response.MsgServerError)
			c.Abort()
			return
		}
		if user == nil {
			response.Error(c, http.StatusNotFound, "User not found")
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextTokenKey, raw)
		c.Next()
	}
}

// UserFromContext returns the record the auth gate attached.
func UserFromContext(c *gin.Context) (*model.User, bool) {
	val, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*model.User)
	return user, ok
}
