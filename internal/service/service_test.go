package service

import (
	"testing"

	"unischool/site-api/internal/model"
	"unischool/site-api/pkg/security"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	d, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, d.AutoMigrate(
		model.User{},
		model.Profile{},
		model.Session{},
		model.LoginHistory{},
		model.VerificationToken{},
		model.Blog{},
	))

	return d
}

func makeUser(t *testing.T, d *gorm.DB, h *security.BcryptHash, id, email, password string) *model.User {
	t.Helper()

	hashed, err := h.GenerateFromPassword(password)
	require.NoError(t, err)

	user := &model.User{
		ID:       id,
		Email:    email,
		Name:     "Test User",
		Password: hashed,
		Role:     model.RoleMember,
		Team:     model.TeamAll,
	}
	require.NoError(t, d.Create(user).Error)

	return user
}
