package model

import "time"

// Role and team values are closed sets. Anything else is rejected
// at the API boundary before it reaches the database.
const (
	RoleAdmin      = "ADMIN"
	RoleTeamLeader = "TEAM_LEADER"
	RoleMember     = "MEMBER"

	TeamAll     = "ALL"
	TeamEdit    = "EDIT"
	TeamVideo   = "VIDEO"
	TeamDevelop = "DEVELOP"
)

func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleTeamLeader || r == RoleMember
}

func ValidTeam(t string) bool {
	return t == TeamAll || t == TeamEdit || t == TeamVideo || t == TeamDevelop
}

type User struct {
	ID            string     `gorm:"primaryKey" json:"id"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Name          string     `json:"name"`
	Password      string     `gorm:"not null" json:"-"`
	Role          string     `gorm:"not null;default:MEMBER" json:"role"`
	Team          string     `gorm:"not null;default:ALL" json:"team"`
	EmailVerified *time.Time `json:"emailVerified"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	Profile            *Profile            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Sessions           []Session           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"sessions,omitempty"`
	LoginHistory       []LoginHistory      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"loginHistory,omitempty"`
	VerificationTokens []VerificationToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Blogs              []Blog              `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"-"`
}
