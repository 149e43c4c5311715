package service

import (
	"testing"
	"time"

	"unischool/site-api/internal/model"
	"unischool/site-api/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSuccess(t *testing.T) {
	d := testDB(t)
	h := security.New()
	user := makeUser(t, d, h, "u1", "u1@example.com", "secret-password")

	token, err := Login(d, h, user, "secret-password", &LoginOpts{
		IPAddress: "10.0.0.1",
		UserAgent: "test-agent",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := ResolveSession(d, token, false)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, resolved.ID)

	var history []model.LoginHistory
	require.NoError(t, d.Where("user_id = ?", user.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.True(t, history[0].Success)
	assert.Equal(t, "10.0.0.1", history[0].IPAddress)
}

func TestLoginWrongPassword(t *testing.T) {
	d := testDB(t)
	h := security.New()
	user := makeUser(t, d, h, "u1", "u1@example.com", "secret-password")

	token, err := Login(d, h, user, "wrong-password", &LoginOpts{
		IPAddress: "10.0.0.1",
		UserAgent: "test-agent",
	})
	require.NoError(t, err)
	assert.Empty(t, token)

	var history []model.LoginHistory
	require.NoError(t, d.Where("user_id = ?", user.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.False(t, history[0].Success)

	var sessions int64
	require.NoError(t, d.Model(&model.Session{}).Where("user_id = ?", user.ID).Count(&sessions).Error)
	assert.Zero(t, sessions)
}

func TestLoginRepeatedFailuresOnlyAppendHistory(t *testing.T) {
	d := testDB(t)
	h := security.New()
	user := makeUser(t, d, h, "u1", "u1@example.com", "secret-password")

	for i := 0; i < 3; i++ {
		token, err := Login(d, h, user, "nope", &LoginOpts{IPAddress: "10.0.0.1"})
		require.NoError(t, err)
		assert.Empty(t, token)
	}

	var failed int64
	require.NoError(t, d.Model(&model.LoginHistory{}).
		Where("user_id = ? AND success = ?", user.ID, false).
		Count(&failed).Error)
	assert.EqualValues(t, 3, failed)

	var sessions int64
	require.NoError(t, d.Model(&model.Session{}).Where("user_id = ?", user.ID).Count(&sessions).Error)
	assert.Zero(t, sessions)
}

func TestLoginReplacesExistingSessions(t *testing.T) {
	d := testDB(t)
	h := security.New()
	user := makeUser(t, d, h, "u1", "u1@example.com", "secret-password")

	first, err := Login(d, h, user, "secret-password", nil)
	require.NoError(t, err)

	second, err := Login(d, h, user, "secret-password", nil)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	// The old token is dead, only the latest session survives
	resolved, err := ResolveSession(d, first, false)
	require.NoError(t, err)
	assert.Nil(t, resolved)

	var sessions int64
	require.NoError(t, d.Model(&model.Session{}).Where("user_id = ?", user.ID).Count(&sessions).Error)
	assert.EqualValues(t, 1, sessions)
}

func TestLoginRememberMeExtendsExpiry(t *testing.T) {
	d := testDB(t)
	h := security.New()
	user := makeUser(t, d, h, "u1", "u1@example.com", "secret-password")

	_, err := Login(d, h, user, "secret-password", &LoginOpts{RememberMe: true})
	require.NoError(t, err)

	var session model.Session
	require.NoError(t, d.Where("user_id = ?", user.ID).First(&session).Error)

	assert.True(t, session.Expires.After(time.Now().Add(SessionDuration)),
		"rememberMe sessions must outlive the default window")
}

func TestResolveSessionExpiredDeletesRow(t *testing.T) {
	d := testDB(t)
	h := security.New()
	user := makeUser(t, d, h, "u1", "u1@example.com", "secret-password")

	require.NoError(t, d.Create(&model.Session{
		SessionToken: "expired-token",
		UserID:       user.ID,
		Expires:      time.Now().Add(-time.Hour),
	}).Error)

	resolved, err := ResolveSession(d, "expired-token", false)
	require.NoError(t, err)
	assert.Nil(t, resolved)

	var count int64
	require.NoError(t, d.Model(&model.Session{}).Where("session_token = ?", "expired-token").Count(&count).Error)
	assert.Zero(t, count)

	// Resolving again is the same answer, the cleanup already happened
	resolved, err = ResolveSession(d, "expired-token", false)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestResolveSessionUnknownToken(t *testing.T) {
	d := testDB(t)

	resolved, err := ResolveSession(d, "never-issued", false)
	require.NoError(t, err)
	assert.Nil(t, resolved)

	resolved, err = ResolveSession(d, "", false)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestLogout(t *testing.T) {
	d := testDB(t)
	h := security.New()
	user := makeUser(t, d, h, "u1", "u1@example.com", "secret-password")

	token, err := Login(d, h, user, "secret-password", nil)
	require.NoError(t, err)

	require.NoError(t, Logout(d, token))

	resolved, err := ResolveSession(d, token, false)
	require.NoError(t, err)
	assert.Nil(t, resolved)

	// Logging out twice is a no-op
	require.NoError(t, Logout(d, token))
}

func TestLogoutAll(t *testing.T) {
	d := testDB(t)
	h := security.New()
	user := makeUser(t, d, h, "u1", "u1@example.com", "secret-password")

	require.NoError(t, d.Create(&model.Session{
		SessionToken: "t1",
		UserID:       user.ID,
		Expires:      time.Now().Add(time.Hour),
	}).Error)
	require.NoError(t, d.Create(&model.Session{
		SessionToken: "t2",
		UserID:       user.ID,
		Expires:      time.Now().Add(time.Hour),
	}).Error)

	require.NoError(t, LogoutAll(d, user.ID))

	var count int64
	require.NoError(t, d.Model(&model.Session{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}
