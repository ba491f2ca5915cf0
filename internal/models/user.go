package models

import "time"

// Role is the closed set of account roles. Authorization compares
// against these constants, never against raw request strings.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         Role   `gorm:"size:20;default:'user'" json:"role"`

	FarmName string `gorm:"size:100" json:"farmName"`
	Location string `gorm:"size:255" json:"location"`

	// Inline data URI (or object-store URL). The user row alone must
	// always resolve to a displayable avatar.
	AvatarURL string `gorm:"type:text" json:"avatarUrl"`

	ResetOTP       string     `gorm:"size:6" json:"-"`
	ResetOTPExpire *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
