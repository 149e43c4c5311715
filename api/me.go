package api

import (
	"unischool/site-api/internal/model"
	"unischool/site-api/internal/service"
	"unischool/site-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// MeFetch returns the current user together with their sessions and
// recent login history.
func (a *API) MeFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := currentUser(c)

	var sessions []model.Session

	err := a.DB.
		Where("user_id = ?", user.ID).
		Order("expires desc").
		Find(&sessions).
		Error
	if err != nil {
		dbError(c, requestID, "Failed to fetch sessions", err)
		return
	}

	var history []model.LoginHistory

	err = a.DB.
		Where("user_id = ?", user.ID).
		Order("created_at desc").
		Limit(50).
		Find(&history).
		Error
	if err != nil {
		dbError(c, requestID, "Failed to fetch login history", err)
		return
	}

	user.Sessions = sessions
	user.LoginHistory = history

	response.Success(c, gin.H{
		"user": user,
	})
}

// MeDelete removes the caller's own account and everything attached to
// it, then clears the session cookie.
func (a *API) MeDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := currentUser(c)

	if err := service.DeleteUser(a.DB, user.ID); err != nil {
		dbError(c, requestID, "Failed to delete account", err)
		return
	}

	clearSessionCookie(c)

	response.Success(c, gin.H{
		"message": "Account deleted",
	})
}
