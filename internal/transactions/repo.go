package transactions

import (
	"context"
	"time"

	"github.com/angelmondragon/stationdesk-backend/internal/repo"
	"github.com/angelmondragon/stationdesk-backend/pkg/db"
	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository struct {
	repo.Base
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

func (r *Repository) Create(ctx context.Context, txn *models.Transaction) error {
	if !r.Configured() {
		return db.ErrNotConfigured
	}
	return r.DB(ctx).Create(txn).Error
}

// ByDateRange lists a station's transactions dated within [from, to], newest first.
func (r *Repository) ByDateRange(ctx context.Context, stationID uuid.UUID, from, to time.Time) ([]models.Transaction, error) {
	out := []models.Transaction{}
	if !r.Configured() {
		return out, nil
	}
	err := r.DB(ctx).
		Where("gas_station_id = ? AND transaction_date >= ? AND transaction_date <= ?", stationID, from.UTC(), to.UTC()).
		Order("transaction_date DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
