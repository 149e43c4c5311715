package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"unischool/site-api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryHidesEmailsAndPrivateProfiles(t *testing.T) {
	a := testAPI(t)

	open := seedUser(t, a, "open", "open@example.com", "secret-password", model.RoleMember)
	closed := seedUser(t, a, "closed", "closed@example.com", "secret-password", model.RoleMember)

	require.NoError(t, a.DB.Create(&model.Profile{UserID: open.ID, Bio: "hi there"}).Error)

	require.NoError(t, a.DB.Create(&model.Profile{UserID: closed.ID, Bio: "keep out"}).Error)
	require.NoError(t, a.DB.Model(&model.Profile{}).
		Where("user_id = ?", closed.ID).
		Update("is_public", false).Error)

	w := doJSON(t, a, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Emails never appear on the public directory, in any field
	assert.NotContains(t, w.Body.String(), "@example.com")
	assert.NotContains(t, w.Body.String(), "keep out")

	var envelope struct {
		Data struct {
			Users []member `json:"users"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Users, 2)

	byID := map[string]member{}
	for _, m := range envelope.Data.Users {
		byID[m.ID] = m
	}

	require.NotNil(t, byID["open"].Profile)
	assert.Equal(t, "hi there", byID["open"].Profile.Bio)
	assert.Nil(t, byID["closed"].Profile)
}

func TestAdminProfileUpsert(t *testing.T) {
	a := testAPI(t)

	seedUser(t, a, "admin", "admin@example.com", "admin-password", model.RoleAdmin)
	target := seedUser(t, a, "target", "target@example.com", "secret-password", model.RoleMember)

	w := doJSON(t, a, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "admin@example.com",
		"password": "admin-password",
	})
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)

	w = doJSON(t, a, http.MethodPost, "/api/admin/users/"+target.ID+"/profile", gin.H{
		"bio":      "written by an admin",
		"isPublic": false,
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var profile model.Profile
	require.NoError(t, a.DB.Where("user_id = ?", target.ID).First(&profile).Error)
	assert.Equal(t, "written by an admin", profile.Bio)
	assert.False(t, profile.IsPublic)

	w = doJSON(t, a, http.MethodPost, "/api/admin/users/missing/profile", gin.H{
		"bio": "nobody home",
	}, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminBroadcastValidation(t *testing.T) {
	a := testAPI(t)

	seedUser(t, a, "admin", "admin@example.com", "admin-password", model.RoleAdmin)

	w := doJSON(t, a, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "admin@example.com",
		"password": "admin-password",
	})
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)

	// Mailer is off in tests, the endpoint reports it before anything else
	w = doJSON(t, a, http.MethodPost, "/api/admin/users/send", gin.H{
		"subject": "hello",
		"body":    "<p>hi</p>",
	}, cookie)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
