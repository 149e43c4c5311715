package api

import (
	"net/http"

	"unischool/site-api/internal/service"
	"unischool/site-api/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type adminProfileBody struct {
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatarUrl"`
	IsPublic  *bool   `json:"isPublic"`
}

// AdminUserProfileUpsert lets an admin edit another member's profile.
// Same partial-update semantics as the self-service endpoint.
func (a *API) AdminUserProfileUpsert(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data adminProfileBody
	if err := c.ShouldBind(&data); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user := a.adminLookupUser(c, requestID)
	if user == nil {
		return
	}

	fields := map[string]any{}
	if data.Bio != nil {
		fields["bio"] = *data.Bio
	}
	if data.AvatarURL != nil {
		fields["avatar_url"] = *data.AvatarURL
	}
	if data.IsPublic != nil {
		fields["is_public"] = *data.IsPublic
	}

	profile, err := service.UpsertProfile(a.DB, user.ID, fields)
	if err != nil {
		dbError(c, requestID, "Failed to upsert profile", err)
		return
	}

	response.Success(c, gin.H{
		"profile": profile,
		"message": "Profile updated",
	})
}
