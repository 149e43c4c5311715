package service

import (
	"unischool/site-api/internal/model"

	"gorm.io/gorm"
)

// UpsertProfile creates the user's profile row on first use and applies
// the given column updates afterwards. Passing no fields just ensures
// the row exists.
func UpsertProfile(d *gorm.DB, userID string, fields map[string]any) (*model.Profile, error) {
	var profile model.Profile

	err := d.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}

		profile = model.Profile{UserID: userID}
		if err := d.Create(&profile).Error; err != nil {
			return nil, err
		}
	}

	if len(fields) > 0 {
		if err := d.Model(&profile).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	return &profile, nil
}

// DeleteUser hard-deletes an account together with its sessions, login
// history, verification tokens and profile. Authored blogs survive with
// a cleared author.
func DeleteUser(d *gorm.DB, userID string) error {
	return d.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.Session{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&model.LoginHistory{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&model.VerificationToken{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&model.Profile{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Blog{}).Where("author_id = ?", userID).Update("author_id", nil).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", userID).Delete(&model.User{}).Error
	})
}
