package service

import (
	"testing"
	"time"

	"unischool/site-api/internal/model"
	"unischool/site-api/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndGetToken(t *testing.T) {
	d := testDB(t)
	h := security.New()
	user := makeUser(t, d, h, "u1", "u1@example.com", "secret-password")

	issued, err := IssueToken(d, user.ID, model.TokenRegistrationConfirmation, RegistrationTokenHours)
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)

	got, err := GetToken(d, issued.Token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.UserID)
	assert.True(t, got.IsActive(model.TokenRegistrationConfirmation))
}

func TestGetTokenUnknown(t *testing.T) {
	d := testDB(t)

	got, err := GetToken(d, "no-such-token")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTokenTypeCrossRejection(t *testing.T) {
	d := testDB(t)
	h := security.New()
	user := makeUser(t, d, h, "u1", "u1@example.com", "secret-password")

	reset, err := IssueToken(d, user.ID, model.TokenPasswordReset, ResetTokenHours)
	require.NoError(t, err)

	// A reset token never redeems a registration
	assert.False(t, reset.IsActive(model.TokenRegistrationConfirmation))
	assert.True(t, reset.IsActive(model.TokenPasswordReset))
}

func TestTokenExpiry(t *testing.T) {
	d := testDB(t)
	h := security.New()
	user := makeUser(t, d, h, "u1", "u1@example.com", "secret-password")

	expired := model.VerificationToken{
		Token:   "expired",
		UserID:  user.ID,
		Type:    model.TokenPasswordReset,
		Expires: time.Now().Add(-time.Minute),
	}
	require.NoError(t, d.Create(&expired).Error)

	assert.True(t, expired.IsExpired())
	assert.False(t, expired.IsActive(model.TokenPasswordReset))
}

func TestConsumeToken(t *testing.T) {
	d := testDB(t)
	h := security.New()
	user := makeUser(t, d, h, "u1", "u1@example.com", "secret-password")

	issued, err := IssueToken(d, user.ID, model.TokenPasswordReset, ResetTokenHours)
	require.NoError(t, err)

	require.NoError(t, ConsumeToken(d, issued.Token))

	got, err := GetToken(d, issued.Token)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Consuming an already consumed token is harmless
	require.NoError(t, ConsumeToken(d, issued.Token))
}

func TestIssueTokenRejectsUnknownType(t *testing.T) {
	d := testDB(t)

	_, err := IssueToken(d, "u1", "SOMETHING_ELSE", 1)
	assert.Error(t, err)
}
