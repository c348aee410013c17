package expenses

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

type Repository struct {
	repo.Base
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

func (r *Repository) Create(ctx context.Context, expense *models.Expense) error {
	if !r.Configured() {
		return db.ErrNotConfigured
	}
	return r.DB(ctx).Create(expense).Error
}

func (r *Repository) ByDateRange(ctx context.Context, stationID uuid.UUID, from, to time.Time) ([]models.Expense, error) {
	out := []models.Expense{}
	if !r.Configured() {
		return out, nil
	}
	err := r.DB(ctx).
		Where("gas_station_id = ? AND expense_date >= ? AND expense_date <= ?", stationID, from.UTC(), to.UTC()).
		Order("expense_date DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) ByCategory(ctx context.Context, stationID uuid.UUID, category enums.ExpenseCategory) ([]models.Expense, error) {
	out := []models.Expense{}
	if !r.Configured() {
		return out, nil
	}
	err := r.DB(ctx).
		Where("gas_station_id = ? AND category = ?", stationID, category).
		Order("expense_date DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Total sums expense amounts dated within [from, to]. An unconfigured store
// reports zero.
func (r *Repository) Total(ctx context.Context, stationID uuid.UUID, from, to time.Time) (int64, error) {
	if !r.Configured() {
		return 0, nil
	}
	var total int64
	err := r.DB(ctx).
		Model(&models.Expense{}).
		Select("CAST(COALESCE(SUM(amount), 0) AS BIGINT)").
		Where("gas_station_id = ? AND expense_date >= ? AND expense_date <= ?", stationID, from.UTC(), to.UTC()).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
