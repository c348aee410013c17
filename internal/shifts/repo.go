package shifts

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

func (r *Repository) Create(ctx context.Context, shift *models.Shift) error {
	if !r.Configured() {
		return db.ErrNotConfigured
	}
	return r.DB(ctx).Create(shift).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Shift, error) {
	if !r.Configured() {
		return nil, gorm.ErrRecordNotFound
	}
	var shift models.Shift
	if err := r.DB(ctx).First(&shift, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shift, nil
}

// End closes an open shift. It reports false when the shift was already
// ended, so two concurrent callers cannot both succeed.
func (r *Repository) End(ctx context.Context, id uuid.UUID, endTime time.Time) (bool, error) {
	if !r.Configured() {
		return false, db.ErrNotConfigured
	}
	res := r.DB(ctx).
		Model(&models.Shift{}).
		Where("id = ? AND end_time IS NULL", id).
		Updates(map[string]any{
			"end_time":   endTime.UTC(),
			"status":     enums.ShiftStatusClosed,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Active lists open shifts, newest first. A nil stationID spans every station.
func (r *Repository) Active(ctx context.Context, stationID *uuid.UUID) ([]models.Shift, error) {
	out := []models.Shift{}
	if !r.Configured() {
		return out, nil
	}
	q := r.DB(ctx).Where("end_time IS NULL")
	if stationID != nil {
		q = q.Where("gas_station_id = ?", *stationID)
	}
	if err := q.Order("start_time DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ByDateRange lists shifts of a station started within [from, to].
func (r *Repository) ByDateRange(ctx context.Context, stationID uuid.UUID, from, to time.Time) ([]models.Shift, error) {
	out := []models.Shift{}
	if !r.Configured() {
		return out, nil
	}
	err := r.DB(ctx).
		Where("gas_station_id = ? AND start_time >= ? AND start_time <= ?", stationID, from.UTC(), to.UTC()).
		Order("start_time DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
