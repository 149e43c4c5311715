package api

import (
	"net/http"
	"strings"

	"unischool/site-api/internal/service"
	"unischool/site-api/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MeAvatarUpload stores a profile picture in the avatar bucket and
// points the profile at it.
func (a *API) MeAvatarUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := currentUser(c)

	if a.Avatars == nil {
		response.Error(c, http.StatusServiceUnavailable, response.CodeInternal, "Avatar storage is not configured")
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "No avatar file provided")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Avatar must be an image")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.ServerError(c, "Internal server error")

		zap.L().Error("Failed to open uploaded avatar", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer src.Close()

	url, err := a.Avatars.Upload(c.Request.Context(), user.ID, src, file.Size, contentType)
	if err != nil {
		response.ServerError(c, "Failed to store avatar")

		zap.L().Error("Avatar upload failed", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if _, err := service.UpsertProfile(a.DB, user.ID, map[string]any{
		"avatar_url": url,
	}); err != nil {
		dbError(c, requestID, "Failed to update profile", err)
		return
	}

	response.Success(c, gin.H{
		"avatarUrl": url,
	})
}
