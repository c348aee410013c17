package fueldeliveries

import (
	"context"

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

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{Base: repo.NewBase(tx)}
}

func (r *Repository) CreateDelivery(ctx context.Context, delivery *models.FuelDelivery) error {
	if !r.Configured() {
		return db.ErrNotConfigured
	}
	return r.DB(ctx).Omit("Items").Create(delivery).Error
}

func (r *Repository) CreateItem(ctx context.Context, item *models.FuelDeliveryItem) error {
	if !r.Configured() {
		return db.ErrNotConfigured
	}
	return r.DB(ctx).Create(item).Error
}

// ByStation lists deliveries newest first, without items.
func (r *Repository) ByStation(ctx context.Context, stationID uuid.UUID) ([]models.FuelDelivery, error) {
	out := []models.FuelDelivery{}
	if !r.Configured() {
		return out, nil
	}
	err := r.DB(ctx).
		Where("gas_station_id = ?", stationID).
		Order("delivery_date DESC").
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) Items(ctx context.Context, deliveryID uuid.UUID) ([]models.FuelDeliveryItem, error) {
	out := []models.FuelDeliveryItem{}
	if !r.Configured() {
		return out, nil
	}
	if err := r.DB(ctx).Where("fuel_delivery_id = ?", deliveryID).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
