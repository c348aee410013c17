package auth

import (
	"time"

	"github.com/angelmondragon/stationdesk-backend/internal/users"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
)

// LoginRequest captures the user credentials sent to auth.login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the signed session token for the cookie plus the
// sanitized user.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *users.UserDTO
}

// CreateUserRequest is the admin-only account creation payload.
type CreateUserRequest struct {
	Email    string          `json:"email" validate:"required,email,max=320"`
	Password string          `json:"password" validate:"required,min=8,max=256"`
	Name     *string         `json:"name" validate:"omitempty,max=255"`
	Role     *enums.UserRole `json:"role"`
}

// Caller identifies the authenticated user behind a request.
type Caller struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

func (c Caller) IsAdmin() bool {
	return c.Role == enums.UserRoleAdmin
}
