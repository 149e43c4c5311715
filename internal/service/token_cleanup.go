package service

import (
	"time"

	"unischool/site-api/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TokenCleanup defines a function used to periodically delete expired
// verification tokens. Redemption already rejects expired tokens on its
// own, this only keeps the table from growing without bound.
func TokenCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Token cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			err := db.
				Where("expires < ?", time.Now()).
				Delete(&model.VerificationToken{}).
				Error
			if err != nil {
				zap.L().Error("Failed to cleanup expired tokens", zap.Error(err))
			}
		}
	}()
}
