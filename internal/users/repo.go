package users

import (
	"context"
	"time"

	"github.com/angelmondragon/stationdesk-backend/internal/repo"
	"github.com/angelmondragon/stationdesk-backend/pkg/db"
	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists user accounts. Lookups on an unconfigured store report
// gorm.ErrRecordNotFound so login falls through to the identity provider.
type Repository struct {
	repo.Base
	now func() time.Time
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn), now: time.Now}
}

func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	if !r.Configured() {
		return nil, db.ErrNotConfigured
	}
	user := dto.ToModel()
	if err := r.DB(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", NormalizeEmail(email))
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) first(ctx context.Context, cond string, arg any) (*models.User, error) {
	if !r.Configured() {
		return nil, gorm.ErrRecordNotFound
	}
	user := &models.User{}
	if err := r.DB(ctx).Where(cond, arg).Take(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// List returns every user, newest first.
func (r *Repository) List(ctx context.Context) ([]models.User, error) {
	out := []models.User{}
	if !r.Configured() {
		return out, nil
	}
	err := r.DB(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

// UpdateLastSignedIn leaves updated_at alone; signing in is not an edit.
func (r *Repository) UpdateLastSignedIn(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.patch(ctx, id, map[string]any{"last_signed_in_at": at.UTC()}, false)
}

func (r *Repository) UpdateRole(ctx context.Context, id uuid.UUID, role enums.UserRole) error {
	return r.patch(ctx, id, map[string]any{"role": role}, true)
}

// UpdatePasswordHash stores a new hash and marks the account as a local login.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.patch(ctx, id, map[string]any{
		"password_hash": hash,
		"login_method":  enums.LoginMethodEmailPassword,
	}, true)
}

// patch writes columns on one user. A missing row is gorm.ErrRecordNotFound.
func (r *Repository) patch(ctx context.Context, id uuid.UUID, columns map[string]any, touch bool) error {
	if !r.Configured() {
		return db.ErrNotConfigured
	}
	if touch {
		columns["updated_at"] = r.now().UTC()
	}
	res := r.DB(ctx).Model(&models.User{}).Where("id = ?", id).UpdateColumns(columns)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
