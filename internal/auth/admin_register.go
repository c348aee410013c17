package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/angelmondragon/stationdesk-backend/internal/users"
	"github.com/angelmondragon/stationdesk-backend/pkg/config"
	"github.com/angelmondragon/stationdesk-backend/pkg/db"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/angelmondragon/stationdesk-backend/pkg/security"
	"gorm.io/gorm"
)

// ProvisionOwnerRequest contains the credentials for the first-run admin.
type ProvisionOwnerRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Name     string
}

// ProvisionOwnerResult reports whether the account was created or promoted.
type ProvisionOwnerResult struct {
	User    *users.UserDTO
	Created bool
}

// OwnerProvisioner creates or promotes the owner account with a local password.
type OwnerProvisioner interface {
	Provision(ctx context.Context, req ProvisionOwnerRequest) (*ProvisionOwnerResult, error)
}

// OwnerProvisionerParams names the dependencies for the provisioning flow.
type OwnerProvisionerParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
}

type ownerProvisioner struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
}

// NewOwnerProvisioner builds the provisioning flow used by cmd/seedadmin.
func NewOwnerProvisioner(params OwnerProvisionerParams) (OwnerProvisioner, error) {
	if params.DB == nil || !params.DB.Configured() {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "database not configured")
	}
	return &ownerProvisioner{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *ownerProvisioner) Provision(ctx context.Context, req ProvisionOwnerRequest) (*ProvisionOwnerResult, error) {
	email := users.NormalizeEmail(req.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(req.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var result *ProvisionOwnerResult
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)

		existing, err := userRepo.FindByEmail(ctx, email)
		switch {
		case err == nil:
			if err := userRepo.UpdatePasswordHash(ctx, existing.ID, passwordHash); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
			}
			if err := userRepo.UpdateRole(ctx, existing.ID, enums.UserRoleAdmin); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "promote user")
			}
			reloaded, err := userRepo.FindByID(ctx, existing.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload user")
			}
			result = &ProvisionOwnerResult{User: users.FromModel(reloaded)}
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		var name *string
		if trimmed := strings.TrimSpace(req.Name); trimmed != "" {
			name = &trimmed
		}
		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			Name:         name,
			PasswordHash: &passwordHash,
			LoginMethod:  enums.LoginMethodEmailPassword,
			Role:         enums.UserRoleAdmin,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		result = &ProvisionOwnerResult{User: users.FromModel(user), Created: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
