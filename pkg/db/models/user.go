package models

import (
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an operator account. PasswordHash is nil for accounts that
// only authenticate through the external identity provider.
type User struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Name           *string           `gorm:"column:name"`
	Email          string            `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash   *string           `gorm:"column:password_hash"`
	LoginMethod    enums.LoginMethod `gorm:"column:login_method;type:text;not null;default:email_password"`
	Role           enums.UserRole    `gorm:"column:role;type:text;not null;default:user"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
	LastSignedInAt *time.Time        `gorm:"column:last_signed_in_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	ensureID(&u.ID)
	return nil
}

// DisplayName falls back from name to email to a generic label.
func (u User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return "User"
}
