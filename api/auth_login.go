package api

import (
	"net/http"
	"strings"

	"unischool/site-api/internal/model"
	"unischool/site-api/internal/service"
	"unischool/site-api/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type loginBody struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

func (a *API) AuthLogin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var missing []string
	if data.Email == "" {
		missing = append(missing, "email is required")
	}
	if data.Password == "" {
		missing = append(missing, "password is required")
	}
	if len(missing) > 0 {
		response.Validation(c, missing)
		return
	}

	// Emails are stored lowercased, the lookup has to match that
	data.Email = strings.TrimSpace(strings.ToLower(data.Email))

	var user model.User

	if err := a.DB.Where("email = ?", data.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "User not found")
			return
		}

		dbError(c, requestID, "Failed to look up user", err)
		return
	}

	ipAddress := c.ClientIP()
	userAgent := c.Request.UserAgent()

	token, err := service.Login(a.DB, a.Hash, &user, data.Password, &service.LoginOpts{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		RememberMe: data.RememberMe,
	})
	if err != nil {
		dbError(c, requestID, "Login failed", err)
		return
	}

	// A mismatch is a normal outcome, not a server fault
	if token == "" {
		response.Unauthorized(c, "Invalid password")
		return
	}

	duration := service.SessionDuration
	if data.RememberMe {
		duration = service.ExtendedSessionDuration
	}

	setSessionCookie(c, token, int(duration.Seconds()))

	// Best effort: a failed notification must never fail the login
	if a.Mailer != nil {
		go func(email, ip, ua string) {
			if err := a.Mailer.SendLoginNotificationMail(email, ip, ua); err != nil {
				zap.L().Warn("Failed to send login notification", zap.Error(err), zap.String("requestID", requestID))
			}
		}(user.Email, ipAddress, userAgent)
	}

	response.Success(c, gin.H{
		"token": token,
	})
}
