package employees

import (
	"context"
	"time"

	"github.com/angelmondragon/stationdesk-backend/internal/repo"
	"github.com/angelmondragon/stationdesk-backend/pkg/db"
	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists employees and their station links.
type Repository struct {
	repo.Base
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{Base: repo.NewBase(tx)}
}

func (r *Repository) Create(ctx context.Context, employee *models.Employee) error {
	if !r.Configured() {
		return db.ErrNotConfigured
	}
	return r.DB(ctx).Omit("Stations").Create(employee).Error
}

// ReplaceStations swaps every station link of the employee for stationIDs.
func (r *Repository) ReplaceStations(ctx context.Context, employeeID uuid.UUID, stationIDs []uuid.UUID) error {
	if !r.Configured() {
		return db.ErrNotConfigured
	}
	conn := r.DB(ctx)
	if err := conn.Where("employee_id = ?", employeeID).Delete(&models.EmployeeStation{}).Error; err != nil {
		return err
	}
	if len(stationIDs) == 0 {
		return nil
	}
	links := make([]models.EmployeeStation, 0, len(stationIDs))
	for _, id := range stationIDs {
		links = append(links, models.EmployeeStation{EmployeeID: employeeID, GasStationID: id})
	}
	return conn.Create(&links).Error
}

// List returns every employee with station links, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Employee, error) {
	out := []models.Employee{}
	if !r.Configured() {
		return out, nil
	}
	err := r.DB(ctx).
		Preload("Stations").
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ByStation returns employees linked to stationID.
func (r *Repository) ByStation(ctx context.Context, stationID uuid.UUID) ([]models.Employee, error) {
	out := []models.Employee{}
	if !r.Configured() {
		return out, nil
	}
	err := r.DB(ctx).
		Preload("Stations").
		Joins("JOIN employee_stations ON employee_stations.employee_id = employees.id").
		Where("employee_stations.gas_station_id = ?", stationID).
		Order("employees.created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	if !r.Configured() {
		return nil, gorm.ErrRecordNotFound
	}
	var employee models.Employee
	if err := r.DB(ctx).Preload("Stations").First(&employee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByIDForUpdate locks the employee row until the surrounding transaction
// ends. Station links are not loaded.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	if !r.Configured() {
		return nil, gorm.ErrRecordNotFound
	}
	var employee models.Employee
	err := r.DB(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Take(&employee, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// Update applies a partial column update. updated_at is always refreshed.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if !r.Configured() {
		return db.ErrNotConfigured
	}
	fields["updated_at"] = time.Now().UTC()
	res := r.DB(ctx).Model(&models.Employee{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetDocuments overwrites the id_documents column.
func (r *Repository) SetDocuments(ctx context.Context, id uuid.UUID, docs []models.IDDocument) error {
	return r.Update(ctx, id, map[string]any{"id_documents": datatypes.JSONSlice[models.IDDocument](docs)})
}
