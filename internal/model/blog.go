package model

import "time"

type Blog struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Published   bool       `gorm:"default:false" json:"published"`
	PublishedAt *time.Time `json:"publishedAt"`
	AuthorID    *string    `gorm:"index" json:"authorId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
