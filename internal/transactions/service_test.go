package transactions

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

func TestCreateAndListByDateRange(t *testing.T) {
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	ctx := context.Background()

	station := dbtest.MustCreateStation(t, conn, "North")
	day := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)

	first, err := svc.Create(ctx, CreateTransactionInput{
		GasStationID:    station.ID,
		Type:            enums.TransactionTypeFuelSale,
		Amount:          4599,
		TransactionDate: day.Add(9 * time.Hour),
	})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateTransactionInput{
		GasStationID:    station.ID,
		Type:            enums.TransactionTypeStoreSale,
		Amount:          325,
		TransactionDate: day.Add(15 * time.Hour),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateTransactionInput{
		GasStationID:    station.ID,
		Type:            enums.TransactionTypeOther,
		Amount:          100,
		TransactionDate: day.Add(-time.Hour),
	})
	require.NoError(t, err)

	rows, err := svc.ByDateRange(ctx, shifts.DateRangeInput{GasStationID: station.ID, StartDate: day, EndDate: day.Add(24 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, first.ID, rows[1].ID)
	assert.Equal(t, int64(4599), rows[1].Amount)
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc, err := NewService(NewRepository(dbtest.Open(t)))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateTransactionInput{
		GasStationID:    uuid.New(),
		Type:            "refund",
		TransactionDate: time.Now(),
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "got %v", err)
}
