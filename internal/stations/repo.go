package stations

import (
	"context"

	"github.com/angelmondragon/stationdesk-backend/internal/repo"
	"github.com/angelmondragon/stationdesk-backend/pkg/db"
	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes gas station persistence.
type Repository struct {
	repo.Base
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

func (r *Repository) Create(ctx context.Context, station *models.GasStation) error {
	if !r.Configured() {
		return db.ErrNotConfigured
	}
	return r.DB(ctx).Create(station).Error
}

// List returns every station, newest first.
func (r *Repository) List(ctx context.Context) ([]models.GasStation, error) {
	out := []models.GasStation{}
	if !r.Configured() {
		return out, nil
	}
	if err := r.DB(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.GasStation, error) {
	if !r.Configured() {
		return nil, gorm.ErrRecordNotFound
	}
	var station models.GasStation
	if err := r.DB(ctx).First(&station, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &station, nil
}
