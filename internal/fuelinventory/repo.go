package fuelinventory

import (
	"context"
	"time"

	"github.com/angelmondragon/stationdesk-backend/internal/repo"
	"github.com/angelmondragon/stationdesk-backend/pkg/db"
	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	repo.Base
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

// Upsert sets the quantity for (station, grade) in a single statement on the
// unique index, so concurrent writers converge on one row.
func (r *Repository) Upsert(ctx context.Context, stationID uuid.UUID, grade enums.FuelGrade, quantity int64, at time.Time) (*models.FuelInventory, error) {
	if !r.Configured() {
		return nil, db.ErrNotConfigured
	}
	row := &models.FuelInventory{
		GasStationID: stationID,
		FuelGrade:    grade,
		Quantity:     quantity,
		LastUpdated:  at.UTC(),
	}
	err := r.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "gas_station_id"}, {Name: "fuel_grade"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "last_updated"}),
	}).Create(row).Error
	if err != nil {
		return nil, err
	}
	return r.find(ctx, stationID, grade)
}

func (r *Repository) find(ctx context.Context, stationID uuid.UUID, grade enums.FuelGrade) (*models.FuelInventory, error) {
	var row models.FuelInventory
	err := r.DB(ctx).
		Where("gas_station_id = ? AND fuel_grade = ?", stationID, grade).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) ByStation(ctx context.Context, stationID uuid.UUID) ([]models.FuelInventory, error) {
	out := []models.FuelInventory{}
	if !r.Configured() {
		return out, nil
	}
	if err := r.DB(ctx).Where("gas_station_id = ?", stationID).Order("fuel_grade ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
