package shiftreports

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

func TestCreateReportOncePerShift(t *testing.T) {
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	ctx := context.Background()

	station := dbtest.MustCreateStation(t, conn, "North")
	employee := dbtest.MustCreateEmployee(t, conn, station.ID)
	shift := dbtest.MustCreateShift(t, conn, station.ID, employee.ID, time.Date(2026, 6, 1, 6, 0, 0, 0, time.UTC))

	report, err := svc.Create(ctx, CreateReportInput{
		ShiftID:         shift.ID,
		TotalSales:      150000,
		FuelSales:       120000,
		GrocerySales:    30000,
		OverShortAmount: -250,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ReportStatusPending, report.Status)
	assert.Equal(t, int64(-250), report.OverShortAmount)

	_, err = svc.Create(ctx, CreateReportInput{ShiftID: shift.ID, TotalSales: 1})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict), "got %v", err)

	rows, err := svc.ByShift(ctx, shift.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, report.ID, rows[0].ID)
}

func TestCreateReportUnknownShift(t *testing.T) {
	svc, err := NewService(NewRepository(dbtest.Open(t)))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateReportInput{ShiftID: uuid.New()})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound), "got %v", err)
}

func TestCreateReportUnconfigured(t *testing.T) {
	svc, err := NewService(NewRepository(nil))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateReportInput{ShiftID: uuid.New()})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency), "got %v", err)
}

func TestUpdateStatusRecordsReviewer(t *testing.T) {
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	ctx := context.Background()

	station := dbtest.MustCreateStation(t, conn, "North")
	employee := dbtest.MustCreateEmployee(t, conn, station.ID)
	shift := dbtest.MustCreateShift(t, conn, station.ID, employee.ID, time.Date(2026, 6, 1, 6, 0, 0, 0, time.UTC))
	reviewer := dbtest.MustCreateUser(t, conn, "boss@example.com", enums.UserRoleAdmin, nil)

	report, err := svc.Create(ctx, CreateReportInput{ShiftID: shift.ID})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, UpdateStatusInput{ReportID: report.ID, Status: enums.ReportStatusApproved}, reviewer.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ReportStatusApproved, updated.Status)
	require.NotNil(t, updated.ReviewedBy)
	assert.Equal(t, reviewer.ID, *updated.ReviewedBy)

	_, err = svc.UpdateStatus(ctx, UpdateStatusInput{ReportID: report.ID, Status: "archived"}, reviewer.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "got %v", err)

	_, err = svc.UpdateStatus(ctx, UpdateStatusInput{ReportID: uuid.New(), Status: enums.ReportStatusRejected}, reviewer.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound), "got %v", err)
}

func TestByDateRangeJoinsShift(t *testing.T) {
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	ctx := context.Background()

	station := dbtest.MustCreateStation(t, conn, "North")
	other := dbtest.MustCreateStation(t, conn, "South")
	employee := dbtest.MustCreateEmployee(t, conn, station.ID)
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	inRange := dbtest.MustCreateShift(t, conn, station.ID, employee.ID, day.Add(6*time.Hour))
	outOfRange := dbtest.MustCreateShift(t, conn, station.ID, employee.ID, day.Add(72*time.Hour))
	otherStation := dbtest.MustCreateShift(t, conn, other.ID, employee.ID, day.Add(6*time.Hour))
	for _, id := range []uuid.UUID{inRange.ID, outOfRange.ID, otherStation.ID} {
		_, err := svc.Create(ctx, CreateReportInput{ShiftID: id, TotalSales: 100})
		require.NoError(t, err)
	}

	rows, err := svc.ByDateRange(ctx, shifts.DateRangeInput{GasStationID: station.ID, StartDate: day, EndDate: day.Add(24 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, inRange.ID, rows[0].Report.ShiftID)
	assert.Equal(t, inRange.ID, rows[0].Shift.ID)
	assert.Equal(t, station.ID, rows[0].Shift.GasStationID)
}
