// Package service holds the application core: session lifecycle,
// verification token lifecycle, mail delivery and background sweepers.
// All functions receive an explicit *gorm.DB handle, there is no
// ambient database state.
package service

import (
	"time"

	"unischool/site-api/internal/model"
	"unischool/site-api/pkg/security"
	"unischool/site-api/pkg/util"

	"gorm.io/gorm"
)

const (
	sessionTokenSize = 32

	// SessionDuration is the default lifetime of a session. Logins with
	// rememberMe get the extended window instead.
	SessionDuration         = 7 * 24 * time.Hour
	ExtendedSessionDuration = 90 * 24 * time.Hour
)

type LoginOpts struct {
	IPAddress  string
	UserAgent  string
	RememberMe bool
}

// Login verifies the password and, on a match, creates a fresh session
// for the user. A single active session is enforced: every other
// session row of the user is removed in the same transaction that
// creates the new one. A password mismatch is a normal outcome and
// returns ("", nil), recording a failed login-history row when request
// metadata is available.
func Login(d *gorm.DB, h *security.BcryptHash, user *model.User, password string, opts *LoginOpts) (string, error) {
	if opts == nil {
		opts = &LoginOpts{}
	}

	ok, err := h.VerifyPasswd(password, user.Password)
	if err != nil {
		return "", err
	}

	if !ok {
		if opts.IPAddress != "" || opts.UserAgent != "" {
			if err := d.Create(&model.LoginHistory{
				UserID:    user.ID,
				Success:   false,
				IPAddress: opts.IPAddress,
				UserAgent: opts.UserAgent,
			}).Error; err != nil {
				return "", err
			}
		}

		return "", nil
	}

	token, err := util.GenerateToken(sessionTokenSize)
	if err != nil {
		return "", err
	}

	duration := SessionDuration
	if opts.RememberMe {
		duration = ExtendedSessionDuration
	}

	err = d.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&model.Session{}).Error; err != nil {
			return err
		}

		if err := tx.Create(&model.Session{
			SessionToken: token,
			UserID:       user.ID,
			Expires:      time.Now().Add(duration),
			IPAddress:    opts.IPAddress,
			UserAgent:    opts.UserAgent,
		}).Error; err != nil {
			return err
		}

		return tx.Create(&model.LoginHistory{
			UserID:    user.ID,
			Success:   true,
			IPAddress: opts.IPAddress,
			UserAgent: opts.UserAgent,
		}).Error
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

// ResolveSession returns the user owning a valid session token, or nil
// when the token is absent, unknown or expired. Expired rows are
// deleted on first touch, there is no background dependency for
// correctness.
func ResolveSession(d *gorm.DB, token string, includeProfile bool) (*model.User, error) {
	if token == "" {
		return nil, nil
	}

	q := d.Preload("User")
	if includeProfile {
		q = q.Preload("User.Profile")
	}

	var session model.Session

	err := q.Where("session_token = ?", token).First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	if session.Expires.Before(time.Now()) {
		if err := d.Where("session_token = ?", token).Delete(&model.Session{}).Error; err != nil {
			return nil, err
		}

		return nil, nil
	}

	return &session.User, nil
}

// Logout removes the session matching the token. Unknown tokens are a
// no-op, logging out twice is fine.
func Logout(d *gorm.DB, token string) error {
	if token == "" {
		return nil
	}

	return d.Where("session_token = ?", token).Delete(&model.Session{}).Error
}

// LogoutAll removes every session of the user.
func LogoutAll(d *gorm.DB, userID string) error {
	return d.Where("user_id = ?", userID).Delete(&model.Session{}).Error
}
