package service

import (
	"unischool/site-api/internal/model"
	"unischool/site-api/pkg/security"

	"gorm.io/gorm"
)

const (
	// RegistrationTokenHours and ResetTokenHours are the validity
	// windows handed out by the mail flows: 15 days each.
	RegistrationTokenHours = 24 * 15
	ResetTokenHours        = 24 * 15
)

// IssueToken creates and persists a purpose-typed verification token
// for the user.
func IssueToken(d *gorm.DB, userID, typ string, validHours int) (*model.VerificationToken, error) {
	token, err := security.MakeVerificationToken(&security.VerificationTokenOpts{
		UserID:     userID,
		Type:       typ,
		ValidHours: validHours,
	})
	if err != nil {
		return nil, err
	}

	if err := d.Create(token).Error; err != nil {
		return nil, err
	}

	return token, nil
}

// GetToken looks a token up by its exact string. Expiry is not checked
// here, callers decide via IsActive.
func GetToken(d *gorm.DB, token string) (*model.VerificationToken, error) {
	var record model.VerificationToken

	err := d.Where("token = ?", token).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &record, nil
}

// ConsumeToken deletes a token after the state change it authorized.
// Must be called on every successful redemption to prevent replay.
func ConsumeToken(d *gorm.DB, token string) error {
	return d.Where("token = ?", token).Delete(&model.VerificationToken{}).Error
}
