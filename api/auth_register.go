package api

import (
	"net/http"
	"strings"
	"time"

	"unischool/site-api/internal/model"
	"unischool/site-api/internal/service"
	"unischool/site-api/pkg/response"
	"unischool/site-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type registerBody struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
}

// AuthRegisterToken redeems a REGISTRATION_CONFIRMATION token carried
// in the Authorization header. The account gets its real name and
// password, the profile is created, the email is marked verified, the
// token is consumed and the user is logged in right away.
func (a *API) AuthRegisterToken(c *gin.Context) {
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

	if token == nil || !token.IsActive(model.TokenRegistrationConfirmation) {
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

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var missing []string
	if data.Name == "" {
		missing = append(missing, "name is required")
	}
	if data.Password == "" {
		missing = append(missing, "password is required")
	}
	if len(missing) > 0 {
		response.Validation(c, missing)
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
			Updates(map[string]any{
				"name":           data.Name,
				"password":       hash,
				"email_verified": time.Now(),
			}).Error; err != nil {
			return err
		}

		if _, err := service.UpsertProfile(tx, user.ID, map[string]any{
			"bio": data.Bio,
		}); err != nil {
			return err
		}

		return service.ConsumeToken(tx, token.Token)
	})
	if err != nil {
		dbError(c, requestID, "Failed to complete registration", err)
		return
	}

	user.Password = hash

	sessionToken, err := service.Login(a.DB, a.Hash, &user, data.Password, &service.LoginOpts{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil || sessionToken == "" {
		response.Unauthorized(c, "Registration completed but automatic login failed, please log in manually")

		if err != nil {
			zap.L().Error("Post-registration login failed", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	setSessionCookie(c, sessionToken, int(service.SessionDuration.Seconds()))

	user.Name = data.Name

	response.Created(c, gin.H{
		"user":    user,
		"message": "Account created and logged in",
	})
}
