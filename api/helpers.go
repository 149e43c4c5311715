package api

import (
	"net/http"

	"unischool/site-api/internal/model"
	"unischool/site-api/pkg/middleware"
	"unischool/site-api/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// currentUser returns the user placed in the context by the session
// middleware. Only valid on routes behind it.
func currentUser(c *gin.Context) *model.User {
	return c.MustGet("user").(*model.User)
}

func setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", viper.GetBool("host.ssl.enabled"), true)
}

func clearSessionCookie(c *gin.Context) {
	setSessionCookie(c, "", -1)
}

// dbError hides persistence failures behind a generic 500 with the
// DATABASE_ERROR code, details only go to the log.
func dbError(c *gin.Context, requestID string, msg string, err error) {
	response.Error(c, http.StatusInternalServerError, response.CodeDatabase, "Internal server error")

	zap.L().Error(msg, zap.Error(err), zap.String("requestID", requestID))
}
