package shiftreports

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

func (r *Repository) Create(ctx context.Context, report *models.ShiftReport) error {
	if !r.Configured() {
		return db.ErrNotConfigured
	}
	return r.DB(ctx).Create(report).Error
}

// FindShift loads the parent shift.
func (r *Repository) FindShift(ctx context.Context, shiftID uuid.UUID) (*models.Shift, error) {
	if !r.Configured() {
		return nil, db.ErrNotConfigured
	}
	var shift models.Shift
	if err := r.DB(ctx).First(&shift, "id = ?", shiftID).Error; err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ShiftReport, error) {
	if !r.Configured() {
		return nil, gorm.ErrRecordNotFound
	}
	var report models.ShiftReport
	if err := r.DB(ctx).First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *Repository) ByShift(ctx context.Context, shiftID uuid.UUID) ([]models.ShiftReport, error) {
	out := []models.ShiftReport{}
	if !r.Configured() {
		return out, nil
	}
	if err := r.DB(ctx).Where("shift_id = ?", shiftID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus records a review decision.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ReportStatus, reviewer uuid.UUID) error {
	if !r.Configured() {
		return db.ErrNotConfigured
	}
	res := r.DB(ctx).
		Model(&models.ShiftReport{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      status,
			"reviewed_by": reviewer,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ByDateRange returns reports whose shift belongs to stationID and started
// within [from, to], with the shifts keyed by id.
func (r *Repository) ByDateRange(ctx context.Context, stationID uuid.UUID, from, to time.Time) ([]models.ShiftReport, map[uuid.UUID]models.Shift, error) {
	reports := []models.ShiftReport{}
	shifts := map[uuid.UUID]models.Shift{}
	if !r.Configured() {
		return reports, shifts, nil
	}
	err := r.DB(ctx).
		Joins("JOIN shifts ON shifts.id = shift_reports.shift_id").
		Where("shifts.gas_station_id = ? AND shifts.start_time >= ? AND shifts.start_time <= ?", stationID, from.UTC(), to.UTC()).
		Order("shifts.start_time DESC").
		Find(&reports).Error
	if err != nil {
		return nil, nil, err
	}
	if len(reports) == 0 {
		return reports, shifts, nil
	}

	ids := make([]uuid.UUID, 0, len(reports))
	for _, report := range reports {
		ids = append(ids, report.ShiftID)
	}
	var rows []models.Shift
	if err := r.DB(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, nil, err
	}
	for _, shift := range rows {
		shifts[shift.ID] = shift
	}
	return reports, shifts, nil
}
