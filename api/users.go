package api

import (
	"time"

	"unischool/site-api/internal/model"
	"unischool/site-api/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// member is the public shape of a user. Emails never leave the
// directory endpoints.
type member struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Role      string         `json:"role"`
	Team      string         `json:"team"`
	CreatedAt time.Time      `json:"createdAt"`
	Profile   *model.Profile `json:"profile,omitempty"`
}

func toMember(u *model.User) member {
	m := member{
		ID:        u.ID,
		Name:      u.Name,
		Role:      u.Role,
		Team:      u.Team,
		CreatedAt: u.CreatedAt,
	}

	// Only public profiles are exposed on the directory
	if u.Profile != nil && u.Profile.IsPublic {
		m.Profile = u.Profile
	}

	return m
}

// UsersList is the public member directory.
func (a *API) UsersList(c *gin.Context) {
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

	members := make([]member, len(users))
	for i := range users {
		members[i] = toMember(&users[i])
	}

	response.Success(c, gin.H{
		"users": members,
	})
}

// UserFetch backs the public member detail page.
func (a *API) UserFetch(c *gin.Context) {
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
		"user": toMember(&user),
	})
}
