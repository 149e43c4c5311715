package model

import "time"

// LoginHistory rows are append-only. The application never updates or
// deletes them, they only go away when the owning user is deleted.
type LoginHistory struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"index;not null" json:"userId"`
	Success   bool      `json:"success"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	CreatedAt time.Time `json:"createdAt"`
}
