package service

import (
	"time"

	"unischool/site-api/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionCleanup periodically deletes expired session rows. Resolution
// already treats expired rows as absent, so this is purely hygiene for
// sessions whose owners never came back.
func SessionCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Session cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			err := db.
				Where("expires < ?", time.Now()).
				Delete(&model.Session{}).
				Error
			if err != nil {
				zap.L().Error("Failed to cleanup expired sessions", zap.Error(err))
			}
		}
	}()
}
