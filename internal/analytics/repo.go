package analytics

import (
	"context"
	"time"

	"github.com/angelmondragon/stationdesk-backend/internal/repo"
	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// revenueRow receives the report sums. Columns are cast to BIGINT so both
// Postgres and sqlite scan into int64.
type revenueRow struct {
	TotalRevenue   int64
	FuelRevenue    int64
	GroceryRevenue int64
}

type Repository struct {
	repo.Base
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

// Revenue sums closing reports whose shift belongs to stationID and started
// within [from, to].
func (r *Repository) Revenue(ctx context.Context, stationID uuid.UUID, from, to time.Time) (Revenue, error) {
	if !r.Configured() {
		return Revenue{}, nil
	}
	var row revenueRow
	err := r.DB(ctx).
		Model(&models.ShiftReport{}).
		Select(`CAST(COALESCE(SUM(shift_reports.total_sales), 0) AS BIGINT) AS total_revenue,
			CAST(COALESCE(SUM(shift_reports.fuel_sales), 0) AS BIGINT) AS fuel_revenue,
			CAST(COALESCE(SUM(shift_reports.grocery_sales), 0) AS BIGINT) AS grocery_revenue`).
		Joins("JOIN shifts ON shifts.id = shift_reports.shift_id").
		Where("shifts.gas_station_id = ? AND shifts.start_time >= ? AND shifts.start_time <= ?", stationID, from.UTC(), to.UTC()).
		Scan(&row).Error
	if err != nil {
		return Revenue{}, err
	}
	return Revenue{
		TotalRevenue:   row.TotalRevenue,
		FuelRevenue:    row.FuelRevenue,
		GroceryRevenue: row.GroceryRevenue,
	}, nil
}
