package api

import (
	"net/http"
	"strings"

	"unischool/site-api/internal/model"
	"unischool/site-api/internal/service"
	"unischool/site-api/pkg/response"
	"unischool/site-api/pkg/util"
	"unischool/site-api/validators"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type adminCreateBody struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Team     string `json:"team"`
}

// AdminUsersList returns every account, email included. Admin only.
func (a *API) AdminUsersList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var users []model.User

	err := a.DB.
		Preload("Profile").
		Order("created_at asc").
		Find(&users).
		Error
	if err != nil {
		dbError(c, requestID, "Failed to fetch users", err)
		return
	}

	response.Success(c, gin.H{
		"users": users,
	})
}

// AdminUserCreate provisions an account and mails a registration
// confirmation link. When no password is given the account gets a
// random unusable one until the invitee completes registration.
func (a *API) AdminUserCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data adminCreateBody
	if err := c.ShouldBind(&data); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	data.Email = strings.TrimSpace(strings.ToLower(data.Email))

	var problems []string
	if err := validators.EmailValidator(data.Email); err != nil {
		problems = append(problems, err.Error())
	}
	if data.Role != "" && !model.ValidRole(data.Role) {
		problems = append(problems, "unknown role")
	}
	if data.Team != "" && !model.ValidTeam(data.Team) {
		problems = append(problems, "unknown team")
	}
	if data.Password != "" {
		if err := validators.PasswordValidator(data.Password); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if len(problems) > 0 {
		response.Validation(c, problems)
		return
	}

	var exists bool

	r := a.DB.Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ?", data.Email).
		Find(&exists)
	if r.Error != nil {
		dbError(c, requestID, "Failed to check email uniqueness", r.Error)
		return
	}

	if exists {
		response.Conflict(c, "A user with this email already exists")
		return
	}

	password := data.Password
	if password == "" {
		// Random placeholder, never shared with anyone. The invitee
		// sets their real password while redeeming the token.
		p, err := util.GenerateToken(32)
		if err != nil {
			response.ServerError(c, "Internal server error")

			zap.L().Error("Failed to generate placeholder password", zap.Error(err), zap.String("requestID", requestID))
			return
		}
		password = p
	}

	hashed, err := a.Hash.GenerateFromPassword(password)
	if err != nil {
		response.ServerError(c, "Internal server error")

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	userID, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		response.ServerError(c, "Internal server error")

		zap.L().Error("Failed to generate user ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	name := strings.TrimSpace(data.Name)
	if name == "" {
		name = strings.SplitN(data.Email, "@", 2)[0]
	}

	user := model.User{
		ID:       userID,
		Email:    data.Email,
		Name:     name,
		Password: hashed,
		Role:     model.RoleMember,
		Team:     model.TeamAll,
	}

	if data.Role != "" {
		user.Role = data.Role
	}
	if data.Team != "" {
		user.Team = data.Team
	}

	if err := a.DB.Create(&user).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			response.Conflict(c, "A user with this email already exists")
			return
		}

		dbError(c, requestID, "Failed to create user", err)
		return
	}

	token, err := service.IssueToken(a.DB, user.ID, model.TokenRegistrationConfirmation, service.RegistrationTokenHours)
	if err != nil {
		dbError(c, requestID, "Failed to issue registration token", err)
		return
	}

	if a.Mailer != nil {
		if err := a.Mailer.SendVerificationMail(user.Email, token.Token); err != nil {
			zap.L().Error("Failed to send verification mail",
				zap.Error(err),
				zap.String("requestID", requestID),
				zap.String("userID", user.ID))
		}
	}

	response.Created(c, gin.H{
		"user": user,
	})
}
