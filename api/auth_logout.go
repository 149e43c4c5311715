package api

import (
	"net/http"

	"unischool/site-api/internal/service"
	"unischool/site-api/pkg/middleware"
	"unischool/site-api/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type logoutBody struct {
	AllSessions bool `json:"allSessions"`
}

// AuthLogout destroys the caller's session. With allSessions set, every
// session of the user goes. Callers without a valid session still get a
// success, logging out is idempotent.
func (a *API) AuthLogout(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data logoutBody
	_ = c.ShouldBind(&data)

	token, _ := c.Cookie(middleware.SessionCookie)
	if token != "" {
		if data.AllSessions {
			user, err := service.ResolveSession(a.DB, token, false)
			if err != nil {
				dbError(c, requestID, "Failed to resolve session", err)
				return
			}

			if user != nil {
				if err := service.LogoutAll(a.DB, user.ID); err != nil {
					dbError(c, requestID, "Failed to delete sessions", err)
					return
				}
			}
		} else {
			if err := service.Logout(a.DB, token); err != nil {
				dbError(c, requestID, "Failed to delete session", err)
				return
			}
		}
	}

	clearSessionCookie(c)

	response.Success(c, gin.H{
		"message": "Logged out",
	})
}

// AuthLogoutRedirect backs the plain logout link in the rendered pages.
func (a *API) AuthLogoutRedirect(c *gin.Context) {
	token, _ := c.Cookie(middleware.SessionCookie)
	if token != "" {
		if err := service.Logout(a.DB, token); err != nil {
			zap.L().Error("Failed to delete session", zap.Error(err))
		}
	}

	clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login")
}
