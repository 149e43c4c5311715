package model

import "time"

// Profile is the optional public face of a user. Bio may contain raw
// HTML which is stored and returned verbatim, rendering is not our job.
type Profile struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID    string    `gorm:"uniqueIndex;not null" json:"userId"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatarUrl"`
	IsPublic  bool      `gorm:"default:true" json:"isPublic"`
	Twitter   string    `json:"twitter"`
	GitHub    string    `json:"github"`
	Instagram string    `json:"instagram"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
