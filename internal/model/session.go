package model

import "time"

// Session is a server-side authentication record. The token is the
// bearer credential carried by the s-token cookie.
type Session struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	SessionToken string    `gorm:"uniqueIndex;not null" json:"-"`
	UserID       string    `gorm:"index;not null" json:"userId"`
	Expires      time.Time `json:"expires"`
	IPAddress    string    `json:"ipAddress"`
	UserAgent    string    `json:"userAgent"`
	CreatedAt    time.Time `json:"createdAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
