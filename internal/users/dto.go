package users

import (
	"strings"
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID             uuid.UUID         `json:"id"`
	Email          string            `json:"email"`
	Name           *string           `json:"name"`
	Role           enums.UserRole    `json:"role"`
	LoginMethod    enums.LoginMethod `json:"loginMethod"`
	LastSignedInAt *time.Time        `json:"lastSignedInAt,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email          string
	Name           *string
	PasswordHash   *string
	LoginMethod    enums.LoginMethod
	Role           enums.UserRole
	LastSignedInAt *time.Time
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		LoginMethod:    u.LoginMethod,
		LastSignedInAt: u.LastSignedInAt,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if role == "" {
		role = enums.UserRoleUser
	}
	method := c.LoginMethod
	if method == "" {
		method = enums.LoginMethodEmailPassword
	}

	return &models.User{
		Email:          NormalizeEmail(c.Email),
		Name:           c.Name,
		PasswordHash:   c.PasswordHash,
		LoginMethod:    method,
		Role:           role,
		LastSignedInAt: c.LastSignedInAt,
	}
}

// NormalizeEmail lowercases and trims an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
