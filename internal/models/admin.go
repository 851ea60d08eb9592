package models

import "time"

// AdminAccount is a back-office user able to sign in with a password.
type AdminAccount struct {
	BaseModel
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName    string     `json:"displayName"`
	PasswordHash   string     `json:"-"`
	Roles          []string   `gorm:"type:text;serializer:json" json:"roles"`
	FailedAttempts int        `json:"-"`
	LockedUntil    *time.Time `json:"lockedUntil,omitempty"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty"`
}

// IsLocked reports whether sign-in is currently refused for the account.
func (a *AdminAccount) IsLocked(now time.Time) bool {
	return a.LockedUntil != nil && now.Before(*a.LockedUntil)
}
