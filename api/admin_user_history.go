package api

import (
	"unischool/site-api/internal/model"
	"unischool/site-api/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminUserHistory returns a user's login attempts, newest first.
func (a *API) AdminUserHistory(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.Param("id")

	var user model.User

	err := a.DB.Where("id = ?", userID).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "User not found")
			return
		}

		dbError(c, requestID, "Failed to fetch user", err)
		return
	}

	var history []model.LoginHistory

	err = a.DB.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(200).
		Find(&history).
		Error
	if err != nil {
		dbError(c, requestID, "Failed to fetch login history", err)
		return
	}

	response.Success(c, gin.H{
		"history": history,
	})
}
