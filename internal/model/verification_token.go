package model

import "time"

const (
	TokenRegistrationConfirmation = "REGISTRATION_CONFIRMATION"
	TokenPasswordReset            = "PASSWORD_RESET"
)

// VerificationToken is a single-use, time-boxed, purpose-typed credential
// delivered by email. Consumed tokens are deleted immediately after use.
type VerificationToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	UserID    string    `gorm:"index;not null" json:"userId"`
	Type      string    `gorm:"not null" json:"type"`
	Expires   time.Time `json:"expires"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t *VerificationToken) IsExpired() bool {
	return time.Now().After(t.Expires)
}

// IsActive reports whether the token may authorize an operation of the
// given type. Both the type and the expiry must match, a PASSWORD_RESET
// token never redeems a registration and vice versa.
func (t *VerificationToken) IsActive(typ string) bool {
	return t.Type == typ && !t.IsExpired()
}
