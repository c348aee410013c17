package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/stationdesk-backend/internal/expenses"
	"github.com/angelmondragon/stationdesk-backend/internal/shifts"
	"github.com/angelmondragon/stationdesk-backend/pkg/db/dbtest"
	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevenueAndProfit(t *testing.T) {
	conn := dbtest.Open(t)
	expenseRepo := expenses.NewRepository(conn)
	svc, err := NewService(NewRepository(conn), expenseRepo)
	require.NoError(t, err)
	ctx := context.Background()

	station := dbtest.MustCreateStation(t, conn, "North")
	other := dbtest.MustCreateStation(t, conn, "South")
	employee := dbtest.MustCreateEmployee(t, conn, station.ID)
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	reports := []struct {
		station uuid.UUID
		start   time.Time
		fuel    int64
		grocery int64
	}{
		{station.ID, day.Add(6 * time.Hour), 90000, 10000},
		{station.ID, day.Add(14 * time.Hour), 70000, 5000},
		{station.ID, day.Add(-6 * time.Hour), 1, 1},
		{other.ID, day.Add(6 * time.Hour), 500, 500},
	}
	for _, r := range reports {
		shift := dbtest.MustCreateShift(t, conn, r.station, employee.ID, r.start)
		require.NoError(t, conn.Create(&models.ShiftReport{
			ShiftID:      shift.ID,
			TotalSales:   r.fuel + r.grocery,
			FuelSales:    r.fuel,
			GrocerySales: r.grocery,
			Status:       enums.ReportStatusPending,
		}).Error)
	}
	require.NoError(t, expenseRepo.Create(ctx, &models.Expense{
		GasStationID: station.ID,
		Category:     enums.ExpenseCategoryPayroll,
		Amount:       40000,
		ExpenseDate:  day.Add(12 * time.Hour),
	}))

	input := shifts.DateRangeInput{GasStationID: station.ID, StartDate: day, EndDate: day.Add(24*time.Hour - time.Second)}
	rev, err := svc.Revenue(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, Revenue{TotalRevenue: 175000, FuelRevenue: 160000, GroceryRevenue: 15000}, *rev)

	profit, err := svc.Profit(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, Profit{Revenue: 175000, Expenses: 40000, Profit: 135000}, *profit)
}

func TestEmptyRangeIsZero(t *testing.T) {
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn), expenses.NewRepository(conn))
	require.NoError(t, err)

	profit, err := svc.Profit(context.Background(), shifts.DateRangeInput{
		GasStationID: uuid.New(),
		StartDate:    time.Now().Add(-time.Hour),
		EndDate:      time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, Profit{}, *profit)
}

type failingTotaler struct{}

func (failingTotaler) Total(context.Context, uuid.UUID, time.Time, time.Time) (int64, error) {
	return 0, errors.New("connection reset")
}

func TestProfitPropagatesExpenseFailure(t *testing.T) {
	svc, err := NewService(NewRepository(nil), failingTotaler{})
	require.NoError(t, err)
	_, err = svc.Profit(context.Background(), shifts.DateRangeInput{GasStationID: uuid.New()})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInternal), "got %v", err)
}
