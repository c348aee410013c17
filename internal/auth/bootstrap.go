package auth

import (
	"github.com/angelmondragon/stationdesk-backend/internal/users"
	"github.com/angelmondragon/stationdesk-backend/pkg/config"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
)

// Bootstrap names the owner account. The first time a user record is created
// for OwnerEmail it is given the admin role.
type Bootstrap struct {
	OwnerEmail string
}

func BootstrapFromConfig(cfg config.OwnerConfig) Bootstrap {
	return Bootstrap{OwnerEmail: users.NormalizeEmail(cfg.Email)}
}

// RoleForNewUser resolves the role of a record being created for email.
func (b Bootstrap) RoleForNewUser(email string, requested enums.UserRole) enums.UserRole {
	if b.OwnerEmail != "" && users.NormalizeEmail(email) == b.OwnerEmail {
		return enums.UserRoleAdmin
	}
	if requested.IsValid() {
		return requested
	}
	return enums.UserRoleUser
}
