package api

import (
	"net/http"
	"strings"

	"unischool/site-api/internal/model"
	"unischool/site-api/internal/service"
	"unischool/site-api/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type profileBody struct {
	Name      string  `json:"name"`
	Bio       *string `json:"bio"`
	IsPublic  *bool   `json:"isPublic"`
	Twitter   *string `json:"twitter"`
	GitHub    *string `json:"github"`
	Instagram *string `json:"instagram"`
}

// MeProfileFetch returns the current user with their profile. The
// session middleware already eager-loads it.
func (a *API) MeProfileFetch(c *gin.Context) {
	response.Success(c, gin.H{
		"user": currentUser(c),
	})
}

// MeProfileUpdate applies name and profile changes. Profile rows are
// created lazily on first update. Bio is stored verbatim, it may
// contain markup and we don't interpret it.
func (a *API) MeProfileUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := currentUser(c)

	var data profileBody
	if err := c.ShouldBind(&data); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if name := strings.TrimSpace(data.Name); name != "" {
		if err := a.DB.Model(&model.User{}).
			Where("id = ?", user.ID).
			Update("name", name).Error; err != nil {
			dbError(c, requestID, "Failed to update user", err)
			return
		}
	}

	fields := map[string]any{}
	if data.Bio != nil {
		fields["bio"] = *data.Bio
	}
	if data.IsPublic != nil {
		fields["is_public"] = *data.IsPublic
	}
	if data.Twitter != nil {
		fields["twitter"] = *data.Twitter
	}
	if data.GitHub != nil {
		fields["git_hub"] = *data.GitHub
	}
	if data.Instagram != nil {
		fields["instagram"] = *data.Instagram
	}

	if _, err := service.UpsertProfile(a.DB, user.ID, fields); err != nil {
		dbError(c, requestID, "Failed to upsert profile", err)
		return
	}

	var fresh model.User

	if err := a.DB.Preload("Profile").Where("id = ?", user.ID).First(&fresh).Error; err != nil {
		dbError(c, requestID, "Failed to reload user", err)
		return
	}

	response.Success(c, gin.H{
		"user": fresh,
	})
}
