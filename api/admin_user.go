package api

import (
	"net/http"
	"strings"

	"unischool/site-api/internal/model"
	"unischool/site-api/internal/service"
	"unischool/site-api/pkg/response"
	"unischool/site-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type adminPatchBody struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
	Team  *string `json:"team"`
}

func (a *API) AdminUserFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var user model.User

	err := a.DB.
		Preload("Profile").
		Where("id = ?", c.Param("id")).
		First(&user).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "User not found")
			return
		}

		dbError(c, requestID, "Failed to fetch user", err)
		return
	}

	response.Success(c, gin.H{
		"user": user,
	})
}

// AdminUserPatch applies partial updates to a user's identity fields.
// Absent fields stay untouched.
func (a *API) AdminUserPatch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.Param("id")

	var data adminPatchBody
	if err := c.ShouldBind(&data); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	updates := map[string]any{}
	var problems []string

	if data.Name != nil {
		if name := strings.TrimSpace(*data.Name); name != "" {
			updates["name"] = name
		} else {
			problems = append(problems, "name can't be empty")
		}
	}
	if data.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*data.Email))
		if err := validators.EmailValidator(email); err != nil {
			problems = append(problems, err.Error())
		} else {
			updates["email"] = email
		}
	}
	if data.Role != nil {
		if model.ValidRole(*data.Role) {
			updates["role"] = *data.Role
		} else {
			problems = append(problems, "unknown role")
		}
	}
	if data.Team != nil {
		if model.ValidTeam(*data.Team) {
			updates["team"] = *data.Team
		} else {
			problems = append(problems, "unknown team")
		}
	}

	if len(problems) > 0 {
		response.Validation(c, problems)
		return
	}

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

	if len(updates) > 0 {
		if err := a.DB.Model(&user).Updates(updates).Error; err != nil {
			if err == gorm.ErrDuplicatedKey {
				response.Conflict(c, "A user with this email already exists")
				return
			}

			dbError(c, requestID, "Failed to update user", err)
			return
		}
	}

	response.Success(c, gin.H{
		"user": user,
	})
}

// AdminUserDelete removes an account and everything attached to it.
// Admins can't delete themselves, that path goes through DELETE /api/me.
func (a *API) AdminUserDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.Param("id")

	if userID == currentUser(c).ID {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "You can't delete your own account here")
		return
	}

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

	if err := service.DeleteUser(a.DB, userID); err != nil {
		dbError(c, requestID, "Failed to delete user", err)
		return
	}

	zap.L().Info("User deleted by admin",
		zap.String("requestID", requestID),
		zap.String("deletedUserID", userID))

	response.Deleted(c)
}
