package api

import (
	"net/http"

	"unischool/site-api/internal/model"
	"unischool/site-api/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminUsersBroadcast mails an admin-composed message to every member
// except the caller. Addresses travel on Bcc.
func (a *API) AdminUsersBroadcast(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	admin := currentUser(c)

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

	var emails []string

	err := a.DB.Model(&model.User{}).
		Where("email <> ?", admin.Email).
		Pluck("email", &emails).
		Error
	if err != nil {
		dbError(c, requestID, "Failed to fetch recipients", err)
		return
	}

	if len(emails) == 0 {
		response.NotFound(c, "No recipients to send to")
		return
	}

	if err := a.Mailer.SendBroadcastMail(emails, data.Subject, data.Body); err != nil {
		response.ServerError(c, "Failed to send mail")

		zap.L().Error("Failed to send broadcast mail",
			zap.Error(err),
			zap.String("requestID", requestID),
			zap.Int("recipients", len(emails)))
		return
	}

	response.Success(c, gin.H{
		"message":    "Mail sent",
		"recipients": len(emails),
	})
}
