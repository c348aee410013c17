package employees

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/db"
	"github.com/angelmondragon/stationdesk-backend/pkg/db/dbtest"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn), db.NewFromGorm(conn))
	require.NoError(t, err)
	return svc, conn
}

func TestCreateLinksStations(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	north := dbtest.MustCreateStation(t, conn, "North")
	south := dbtest.MustCreateStation(t, conn, "South")

	email := " Casey@Example.com "
	created, err := svc.Create(ctx, CreateEmployeeInput{
		GasStationIDs: []uuid.UUID{north.ID},
		GasStationID:  &south.ID,
		FirstName:     "Casey",
		LastName:      "Jones",
		Email:         &email,
		Role:          enums.EmployeeRoleAttendant,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{north.ID, south.ID}, created.GasStationIDs)
	require.NotNil(t, created.Email)
	assert.Equal(t, "casey@example.com", *created.Email)
	assert.True(t, created.IsActive)
	assert.NotNil(t, created.IDDocuments)
	assert.Empty(t, created.IDDocuments)

	byNorth, err := svc.ByStation(ctx, north.ID)
	require.NoError(t, err)
	require.Len(t, byNorth, 1)
	assert.Equal(t, created.ID, byNorth[0].ID)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateLeavesCallerStationSliceIntact(t *testing.T) {
	svc, conn := newTestService(t)
	north := dbtest.MustCreateStation(t, conn, "North")
	south := dbtest.MustCreateStation(t, conn, "South")

	ids := make([]uuid.UUID, 1, 4)
	ids[0] = north.ID
	_, err := svc.Create(context.Background(), CreateEmployeeInput{
		GasStationIDs: ids,
		GasStationID:  &south.ID,
		FirstName:     "Robin",
		LastName:      "Diaz",
		Role:          enums.EmployeeRoleAttendant,
	})
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, ids[:2][1], "spare capacity of the input slice was written")
}

func TestCreateRequiresStation(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), CreateEmployeeInput{
		FirstName: "No",
		LastName:  "Station",
		Role:      enums.EmployeeRoleCashier,
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "got %v", err)
}

func TestUpdatePartialFieldsAndStations(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	north := dbtest.MustCreateStation(t, conn, "North")
	south := dbtest.MustCreateStation(t, conn, "South")
	employee := dbtest.MustCreateEmployee(t, conn, north.ID)

	inactive := false
	lastName := "Updated"
	updated, err := svc.Update(ctx, UpdateEmployeeInput{
		ID:            employee.ID,
		LastName:      &lastName,
		IsActive:      &inactive,
		GasStationIDs: []uuid.UUID{south.ID},
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Updated", updated.LastName)
	assert.Equal(t, "Sam", updated.FirstName)
	assert.Equal(t, []uuid.UUID{south.ID}, updated.GasStationIDs)

	byNorth, err := svc.ByStation(ctx, north.ID)
	require.NoError(t, err)
	assert.Empty(t, byNorth)
}

func TestUpdateMissingEmployee(t *testing.T) {
	svc, _ := newTestService(t)
	name := "Ghost"
	_, err := svc.Update(context.Background(), UpdateEmployeeInput{ID: uuid.New(), FirstName: &name})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound), "got %v", err)
}

func TestAttachDocument(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	station := dbtest.MustCreateStation(t, conn, "North")
	employee := dbtest.MustCreateEmployee(t, conn, station.ID)
	at := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

	withLicense, err := svc.AttachDocument(ctx, employee.ID, "drivers_license", "https://cdn/doc1.pdf", at)
	require.NoError(t, err)
	require.Len(t, withLicense.IDDocuments, 1)
	assert.Equal(t, "drivers_license", withLicense.IDDocuments[0].Type)
	assert.Equal(t, "https://cdn/doc1.pdf", withLicense.IDDocuments[0].URL)
	assert.True(t, withLicense.IDDocuments[0].UploadedAt.Equal(at))

	withPhoto, err := svc.AttachDocument(ctx, employee.ID, DocumentTypeProfilePicture, "https://cdn/me.png", at)
	require.NoError(t, err)
	require.NotNil(t, withPhoto.ProfilePictureURL)
	assert.Equal(t, "https://cdn/me.png", *withPhoto.ProfilePictureURL)
	assert.Len(t, withPhoto.IDDocuments, 1)
}

func TestAttachDocumentLocksEmployeeRow(t *testing.T) {
	svc, conn := newTestService(t)
	station := dbtest.MustCreateStation(t, conn, "North")
	employee := dbtest.MustCreateEmployee(t, conn, station.ID)

	var lockedReads int
	err := conn.Callback().Query().Before("gorm:query").Register("test:row_lock", func(tx *gorm.DB) {
		if tx.Statement.Table != "employees" {
			return
		}
		if _, ok := tx.Statement.Clauses["FOR"]; ok {
			lockedReads++
		}
	})
	require.NoError(t, err)

	ctx := context.Background()
	at := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	_, err = svc.AttachDocument(ctx, employee.ID, "drivers_license", "https://cdn/a.pdf", at)
	require.NoError(t, err)
	second, err := svc.AttachDocument(ctx, employee.ID, "proof_of_address", "https://cdn/b.pdf", at)
	require.NoError(t, err)

	assert.Equal(t, 2, lockedReads)
	require.Len(t, second.IDDocuments, 2)
	assert.Equal(t, "proof_of_address", second.IDDocuments[1].Type)
}

func TestUnconfiguredStore(t *testing.T) {
	svc, err := NewService(NewRepository(nil), db.Disabled())
	require.NoError(t, err)
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Create(ctx, CreateEmployeeInput{
		GasStationIDs: []uuid.UUID{uuid.New()},
		FirstName:     "A",
		LastName:      "B",
		Role:          enums.EmployeeRoleCashier,
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency), "got %v", err)
}
