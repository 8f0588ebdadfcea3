// Package model defines database models
package model

import "time"

type Role string

const (
	RoleUser    Role = "USER"
	RoleManager Role = "MANAGER"
)

// NormalizeRole maps arbitrary input to a valid role. Anything that isn't
// exactly MANAGER becomes USER, so an unknown role can never grant
// manager access.
func NormalizeRole(s string) Role {
	if s == string(RoleManager) {
		return RoleManager
	}
	return RoleUser
}

type User struct {
	ID           string `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"not null;default:USER"`
	Verified     bool   `gorm:"default:false"`

	// Token hashes are stored alongside an absolute expiry. Both columns
	// are nulled in the same statement that consumes the token, so a hash
	// without an expiry (or the other way around) never exists.
	VerifyTokenHash   *string `gorm:"index"`
	VerifyTokenExpiry *time.Time
	ResetTokenHash    *string `gorm:"index"`
	ResetTokenExpiry  *time.Time

	CreatedAt time.Time
}
