package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/stationdesk-backend/internal/repo"
	"github.com/angelmondragon/stationdesk-backend/internal/users"
	pkgAuth "github.com/angelmondragon/stationdesk-backend/pkg/auth"
	"github.com/angelmondragon/stationdesk-backend/pkg/config"
	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/angelmondragon/stationdesk-backend/pkg/identity"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
	"github.com/angelmondragon/stationdesk-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error)
	CreateUser(ctx context.Context, caller Caller, req CreateUserRequest) (*users.UserDTO, error)
	ListUsers(ctx context.Context, caller Caller) ([]users.UserDTO, error)
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateLastSignedIn(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

type identityProvider interface {
	SignIn(ctx context.Context, email, password string) (*identity.Identity, error)
}

type sessionRegistry interface {
	Register(ctx context.Context, accessID string, userID uuid.UUID) error
	Revoke(ctx context.Context, accessID string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
// Identity and Sessions are optional.
type ServiceParams struct {
	UserRepo       userRepository
	Identity       identityProvider
	Sessions       sessionRegistry
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	Bootstrap      Bootstrap
	Logger         *logger.Logger
}

type service struct {
	users       userRepository
	identity    identityProvider
	sessions    sessionRegistry
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	bootstrap   Bootstrap
	logg        *logger.Logger
	now         func() time.Time
	verify      func(password, encoded string) (bool, error)
	// decoyHash is verified against when there is no stored hash, so unknown
	// accounts cost the same argon2id work as a wrong password.
	decoyHash string
}

// NewService constructs the auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.JWTConfig.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	decoy, err := security.HashPassword(uuid.NewString(), params.PasswordConfig)
	if err != nil {
		return nil, fmt.Errorf("build decoy password hash: %w", err)
	}
	return &service{
		users:       params.UserRepo,
		identity:    params.Identity,
		sessions:    params.Sessions,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		bootstrap:   params.Bootstrap,
		logg:        params.Logger,
		now:         time.Now,
		verify:      security.VerifyPassword,
		decoyHash:   decoy,
	}, nil
}

// Login tries the external provider first, when one is configured, then local
// password verification. Every credential failure yields the same error.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	email := users.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	var user *models.User
	if s.identity != nil {
		ident, err := s.identity.SignIn(ctx, email, req.Password)
		switch {
		case err == nil:
			if ident.Email == "" {
				ident.Email = email
			}
			synced, err := s.syncExternal(ctx, ident)
			if err != nil {
				return nil, err
			}
			user = synced
		case errors.Is(err, identity.ErrInvalidCredentials):
			// legacy accounts may still hold a local hash
		default:
			s.warn(ctx, "identity provider sign-in failed, falling back to local credentials", err)
		}
	}

	if user == nil {
		local, err := s.authenticateLocal(ctx, email, req.Password)
		if err != nil {
			return nil, err
		}
		if err := s.recordLogin(ctx, local); err != nil {
			return nil, err
		}
		user = local
	}

	return s.issue(ctx, user)
}

func (s *service) authenticateLocal(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.rejectWithoutHash(password)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	if user.PasswordHash == nil || *user.PasswordHash == "" {
		return nil, s.rejectWithoutHash(password)
	}

	valid, err := s.verify(password, *user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	s.upgradeHash(ctx, user, password)
	return user, nil
}

func (s *service) rejectWithoutHash(password string) error {
	_, _ = s.verify(password, s.decoyHash)
	return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
}

// upgradeHash moves bcrypt and outdated argon2id hashes to the configured
// argon2id cost once the plaintext is known. Failures only cost a retry on the
// next login.
func (s *service) upgradeHash(ctx context.Context, user *models.User, password string) {
	if !security.NeedsRehash(*user.PasswordHash, s.passwordCfg) {
		return
	}
	hash, err := security.HashPassword(password, s.passwordCfg)
	if err == nil {
		err = s.users.UpdatePasswordHash(ctx, user.ID, hash)
	}
	if err != nil {
		s.warn(ctx, "password hash upgrade failed", err)
		return
	}
	user.PasswordHash = &hash
}

// syncExternal mirrors a provider identity into the users table.
func (s *service) syncExternal(ctx context.Context, ident *identity.Identity) (*models.User, error) {
	now := s.now().UTC()
	user, err := s.users.FindByEmail(ctx, ident.Email)
	if err == nil {
		if err := s.users.UpdateLastSignedIn(ctx, user.ID, now); err != nil {
			return nil, repo.Wrap(err, "update last sign in")
		}
		user.LastSignedInAt = &now
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.Wrap(err, "lookup user")
	}

	var name *string
	if trimmed := strings.TrimSpace(ident.Name); trimmed != "" {
		name = &trimmed
	}
	created, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:          ident.Email,
		Name:           name,
		LoginMethod:    enums.LoginMethodExternal,
		Role:           s.bootstrap.RoleForNewUser(ident.Email, enums.UserRoleUser),
		LastSignedInAt: &now,
	})
	if err != nil {
		// A concurrent login for the same identity may have inserted first.
		if existing, findErr := s.users.FindByEmail(ctx, ident.Email); findErr == nil {
			return existing, nil
		}
		return nil, repo.Wrap(err, "create user")
	}
	return created, nil
}

func (s *service) recordLogin(ctx context.Context, user *models.User) error {
	now := s.now().UTC()
	if err := s.users.UpdateLastSignedIn(ctx, user.ID, now); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last sign in")
	}
	user.LastSignedInAt = &now
	return nil
}

func (s *service) issue(ctx context.Context, user *models.User) (*LoginResult, error) {
	token, claims, err := pkgAuth.MintSessionToken(s.jwtCfg, s.now().UTC(), pkgAuth.SessionPayload{
		UserID: user.ID,
		Name:   user.DisplayName(),
		Role:   user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token")
	}
	if s.sessions != nil {
		if err := s.sessions.Register(ctx, claims.ID, user.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register session")
		}
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      users.FromModel(user),
	}, nil
}

// Logout revokes the session behind token when it can be identified. It never
// fails; the caller clears the cookie regardless.
func (s *service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" || s.sessions == nil {
		return nil
	}
	claims, err := pkgAuth.ParseSessionTokenAllowExpired(s.jwtCfg, token)
	if err != nil || claims.ID == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, claims.ID); err != nil {
		s.warn(ctx, "revoke session failed", err)
	}
	return nil
}

// Me returns nil without error when the user no longer exists.
func (s *service) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, repo.Wrap(err, "load user")
	}
	return users.FromModel(user), nil
}

func (s *service) CreateUser(ctx context.Context, caller Caller, req CreateUserRequest) (*users.UserDTO, error) {
	if !caller.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	email := users.NormalizeEmail(req.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	requested := enums.UserRoleUser
	if req.Role != nil {
		if !req.Role.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
		}
		requested = *req.Role
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid password")
	}

	var name *string
	if req.Name != nil {
		if trimmed := strings.TrimSpace(*req.Name); trimmed != "" {
			name = &trimmed
		}
	}
	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:        email,
		Name:         name,
		PasswordHash: &hash,
		LoginMethod:  enums.LoginMethodEmailPassword,
		Role:         s.bootstrap.RoleForNewUser(email, requested),
	})
	if err != nil {
		return nil, repo.Wrap(err, "email already registered")
	}
	return users.FromModel(user), nil
}

func (s *service) ListUsers(ctx context.Context, caller Caller) ([]users.UserDTO, error) {
	if !caller.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	rows, err := s.users.List(ctx)
	if err != nil {
		return nil, repo.Wrap(err, "list users")
	}
	out := make([]users.UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *users.FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), msg)
}
