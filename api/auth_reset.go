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

type resetBody struct {
	Password string `json:"password"`
}

// AuthResetPassword redeems a PASSWORD_RESET token. The password is
// replaced and the token consumed. No automatic login follows, the
// user has to sign in with the new password.
func (a *API) AuthResetPassword(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	bearer := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if bearer == "" || bearer == c.GetHeader("Authorization") {
		response.Unauthorized(c, "No token provided")
		return
	}

	token, err := service.GetToken(a.DB, bearer)
	if err != nil {
		dbError(c, requestID, "Failed to look up verification token", err)
		return
	}

	if token == nil || !token.IsActive(model.TokenPasswordReset) {
		response.Unauthorized(c, "Invalid or expired token")
		return
	}

	var user model.User

	if err := a.DB.Where("id = ?", token.UserID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "The user associated with this token no longer exists")
			return
		}

		dbError(c, requestID, "Failed to look up user", err)
		return
	}

	var data resetBody
	if err := c.ShouldBind(&data); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		response.Validation(c, []string{err.Error()})
		return
	}

	hash, err := a.Hash.GenerateFromPassword(data.Password)
	if err != nil {
		response.ServerError(c, "Internal server error")

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).
			Where("id = ?", user.ID).
			Update("password", hash).Error; err != nil {
			return err
		}

		return service.ConsumeToken(tx, token.Token)
	})
	if err != nil {
		dbError(c, requestID, "Failed to reset password", err)
		return
	}

	response.Success(c, gin.H{
		"message": "Password has been reset",
	})
}
