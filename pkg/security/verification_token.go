package security

import (
	"errors"
	"time"

	"unischool/site-api/internal/model"
	"unischool/site-api/pkg/util"
)

const (
	tokenSize = 32
)

type VerificationTokenOpts struct {
	UserID     string
	Type       string
	ValidHours int
}

// MakeVerificationToken builds an unpersisted token row with a fresh
// random token string and a computed expiry. Persisting it is up to
// the caller.
func MakeVerificationToken(o *VerificationTokenOpts) (*model.VerificationToken, error) {
	if o == nil {
		return nil, errors.New("no token options provided")
	}

	if o.UserID == "" {
		return nil, errors.New("no user ID provided")
	}

	if o.Type != model.TokenRegistrationConfirmation && o.Type != model.TokenPasswordReset {
		return nil, errors.New("invalid token type provided")
	}

	if o.ValidHours <= 0 {
		return nil, errors.New("no validity window provided")
	}

	token, err := util.GenerateToken(tokenSize)
	if err != nil {
		return nil, err
	}

	return &model.VerificationToken{
		Token:     token,
		UserID:    o.UserID,
		Type:      o.Type,
		Expires:   time.Now().Add(time.Duration(o.ValidHours) * time.Hour),
		CreatedAt: time.Now(),
	}, nil
}
