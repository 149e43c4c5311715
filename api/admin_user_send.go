package api

import (
	"net/http"

	"unischool/site-api/internal/model"
	"unischool/site-api/internal/service"
	"unischool/site-api/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type sendMailBody struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (a *API) adminLookupUser(c *gin.Context, requestID string) *model.User {
	var user model.User

	err := a.DB.Where("id = ?", c.Param("id")).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "User not found")
			return nil
		}

		dbError(c, requestID, "Failed to fetch user", err)
		return nil
	}

	return &user
}

// AdminUserSendMail delivers an admin-composed message to a user.
func (a *API) AdminUserSendMail(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	if a.Mailer == nil {
		response.Error(c, http.StatusServiceUnavailable, response.CodeInternal, "Mail delivery is not configured")
		return
	}

	var data sendMailBody
	if err := c.ShouldBind(&data); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var missing []string
	if data.Subject == "" {
		missing = append(missing, "subject is required")
	}
	if data.Body == "" {
		missing = append(missing, "body is required")
	}
	if len(missing) > 0 {
		response.Validation(c, missing)
		return
	}

	user := a.adminLookupUser(c, requestID)
	if user == nil {
		return
	}

	if err := a.Mailer.SendCustomMail(user.Email, data.Subject, data.Body); err != nil {
		response.ServerError(c, "Failed to send mail")

		zap.L().Error("Failed to send custom mail",
			zap.Error(err),
			zap.String("requestID", requestID),
			zap.String("userID", user.ID))
		return
	}

	response.Success(c, gin.H{
		"message": "Mail sent",
	})
}

// AdminUserSendReset issues a fresh password reset token and mails it.
func (a *API) AdminUserSendReset(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	if a.Mailer == nil {
		response.Error(c, http.StatusServiceUnavailable, response.CodeInternal, "Mail delivery is not configured")
		return
	}

	user := a.adminLookupUser(c, requestID)
	if user == nil {
		return
	}

	token, err := service.IssueToken(a.DB, user.ID, model.TokenPasswordReset, service.ResetTokenHours)
	if err != nil {
		dbError(c, requestID, "Failed to issue reset token", err)
		return
	}

	if err := a.Mailer.SendPasswordResetMail(user.Email, token.Token); err != nil {
		response.ServerError(c, "Failed to send mail")

		zap.L().Error("Failed to send reset mail",
			zap.Error(err),
			zap.String("requestID", requestID),
			zap.String("userID", user.ID))
		return
	}

	response.Success(c, gin.H{
		"message": "Reset mail sent",
	})
}

// AdminUserSendVerify re-sends the registration confirmation. Verified
// accounts have nothing left to confirm.
func (a *API) AdminUserSendVerify(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	if a.Mailer == nil {
		response.Error(c, http.StatusServiceUnavailable, response.CodeInternal, "Mail delivery is not configured")
		return
	}

	user := a.adminLookupUser(c, requestID)
	if user == nil {
		return
	}

	if user.EmailVerified != nil {
		response.Forbidden(c, "This account is already verified")
		return
	}

	token, err := service.IssueToken(a.DB, user.ID, model.TokenRegistrationConfirmation, service.RegistrationTokenHours)
	if err != nil {
		dbError(c, requestID, "Failed to issue registration token", err)
		return
	}

	if err := a.Mailer.SendVerificationMail(user.Email, token.Token); err != nil {
		response.ServerError(c, "Failed to send mail")

		zap.L().Error("Failed to send verification mail",
			zap.Error(err),
			zap.String("requestID", requestID),
			zap.String("userID", user.ID))
		return
	}

	response.Success(c, gin.H{
		"message": "Verification mail sent",
	})
}
