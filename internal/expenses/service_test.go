package expenses

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/stationdesk-backend/internal/shifts"
	"github.com/angelmondragon/stationdesk-backend/pkg/db/dbtest"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseQueriesAndTotal(t *testing.T) {
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	ctx := context.Background()

	station := dbtest.MustCreateStation(t, conn, "North")
	other := dbtest.MustCreateStation(t, conn, "South")
	month := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	seed := []CreateExpenseInput{
		{GasStationID: station.ID, Category: enums.ExpenseCategoryRent, Amount: 250000, ExpenseDate: month.Add(24 * time.Hour)},
		{GasStationID: station.ID, Category: enums.ExpenseCategoryUtilities, Amount: 18000, ExpenseDate: month.Add(10 * 24 * time.Hour)},
		{GasStationID: station.ID, Category: enums.ExpenseCategoryRent, Amount: 250000, ExpenseDate: month.AddDate(0, 1, 1)},
		{GasStationID: other.ID, Category: enums.ExpenseCategoryRent, Amount: 99, ExpenseDate: month.Add(24 * time.Hour)},
	}
	for _, input := range seed {
		_, err := svc.Create(ctx, input)
		require.NoError(t, err)
	}

	inMonth, err := svc.ByDateRange(ctx, shifts.DateRangeInput{GasStationID: station.ID, StartDate: month, EndDate: month.AddDate(0, 1, 0)})
	require.NoError(t, err)
	require.Len(t, inMonth, 2)
	assert.Equal(t, enums.ExpenseCategoryUtilities, inMonth[0].Category)

	rent, err := svc.ByCategory(ctx, ByCategoryInput{GasStationID: station.ID, Category: enums.ExpenseCategoryRent})
	require.NoError(t, err)
	assert.Len(t, rent, 2)

	total, err := svc.Total(ctx, station.ID, month, month.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(268000), total)

	empty, err := svc.Total(ctx, station.ID, month.AddDate(1, 0, 0), month.AddDate(1, 1, 0))
	require.NoError(t, err)
	assert.Zero(t, empty)
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	svc, err := NewService(NewRepository(dbtest.Open(t)))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateExpenseInput{GasStationID: uuid.New(), Category: "fun", ExpenseDate: time.Now()})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "got %v", err)
}

func TestUnconfiguredStore(t *testing.T) {
	svc, err := NewService(NewRepository(nil))
	require.NoError(t, err)
	ctx := context.Background()

	rows, err := svc.ByCategory(ctx, ByCategoryInput{GasStationID: uuid.New(), Category: enums.ExpenseCategoryTaxes})
	require.NoError(t, err)
	assert.Empty(t, rows)

	total, err := svc.Total(ctx, uuid.New(), time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = svc.Create(ctx, CreateExpenseInput{GasStationID: uuid.New(), Category: enums.ExpenseCategoryTaxes, Amount: 1, ExpenseDate: time.Now()})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency), "got %v", err)
}
