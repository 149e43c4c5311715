package middleware

import (
	"net/http"

	"unischool/site-api/internal/model"
	"unischool/site-api/internal/service"
	"unischool/site-api/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionCookie is the name of the cookie carrying the opaque session
// token. The middleware only extracts it, all session semantics live in
// the service layer.
const SessionCookie = "s-token"

// NewSessionMiddleware resolves the s-token cookie into a user and
// stores it under "user" (plus "userID" for log enrichment). Requests
// without a resolvable, unexpired session are rejected with 401.
func NewSessionMiddleware(d *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			response.Unauthorized(c, "Authentication required")
			return
		}

		user, err := service.ResolveSession(d, token, true)
		if err != nil {
			response.ServerError(c, "Internal server error")

			zap.L().Error("Failed to resolve session", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if user == nil {
			response.Unauthorized(c, "Session expired or invalid")
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Next()
	}
}

// RequireAdmin must run after the session middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*model.User)

		if user.Role != model.RoleAdmin {
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "Administrator privileges required")
			return
		}

		c.Next()
	}
}
