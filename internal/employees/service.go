package employees

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/stationdesk-backend/internal/repo"
	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentTypeProfilePicture routes an upload to profile_picture_url instead
// of the id_documents list.
const DocumentTypeProfilePicture = "profile_picture"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes employee operations.
type Service interface {
	List(ctx context.Context) ([]EmployeeDTO, error)
	ByStation(ctx context.Context, stationID uuid.UUID) ([]EmployeeDTO, error)
	Create(ctx context.Context, input CreateEmployeeInput) (*EmployeeDTO, error)
	Update(ctx context.Context, input UpdateEmployeeInput) (*EmployeeDTO, error)
	AttachDocument(ctx context.Context, employeeID uuid.UUID, docType, url string, at time.Time) (*EmployeeDTO, error)
	Exists(ctx context.Context, employeeID uuid.UUID) error
}

type service struct {
	repo *Repository
	tx   txRunner
}

func NewService(repo *Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("employee repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) List(ctx context.Context) ([]EmployeeDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, repo.Wrap(err, "list employees")
	}
	return fromModels(rows), nil
}

func (s *service) ByStation(ctx context.Context, stationID uuid.UUID) ([]EmployeeDTO, error) {
	rows, err := s.repo.ByStation(ctx, stationID)
	if err != nil {
		return nil, repo.Wrap(err, "list station employees")
	}
	return fromModels(rows), nil
}

func (s *service) Create(ctx context.Context, input CreateEmployeeInput) (*EmployeeDTO, error) {
	stationIDs := append([]uuid.UUID{}, input.GasStationIDs...)
	if input.GasStationID != nil {
		stationIDs = append(stationIDs, *input.GasStationID)
	}
	stationIDs = uniqueIDs(stationIDs)
	if len(stationIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one gas station is required")
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid employee role")
	}

	employee := &models.Employee{
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Email:       normalizeOptional(input.Email, true),
		PhoneNumber: normalizeOptional(input.PhoneNumber, false),
		Role:        input.Role,
		IsActive:    true,
	}

	var created *models.Employee
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Create(ctx, employee); err != nil {
			return err
		}
		if err := txRepo.ReplaceStations(ctx, employee.ID, stationIDs); err != nil {
			return err
		}
		loaded, err := txRepo.FindByID(ctx, employee.ID)
		if err != nil {
			return err
		}
		created = loaded
		return nil
	})
	if err != nil {
		return nil, repo.Wrap(err, "create employee")
	}
	dto := FromModel(created)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, input UpdateEmployeeInput) (*EmployeeDTO, error) {
	fields := map[string]any{}
	if input.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		fields["email"] = normalizeOptional(input.Email, true)
	}
	if input.PhoneNumber != nil {
		fields["phone_number"] = normalizeOptional(input.PhoneNumber, false)
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid employee role")
		}
		fields["role"] = *input.Role
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}
	var stationIDs []uuid.UUID
	if input.GasStationIDs != nil {
		stationIDs = uniqueIDs(input.GasStationIDs)
		if len(stationIDs) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one gas station is required")
		}
	}

	var updated *models.Employee
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Update(ctx, input.ID, fields); err != nil {
			return err
		}
		if stationIDs != nil {
			if err := txRepo.ReplaceStations(ctx, input.ID, stationIDs); err != nil {
				return err
			}
		}
		loaded, err := txRepo.FindByID(ctx, input.ID)
		if err != nil {
			return err
		}
		updated = loaded
		return nil
	})
	if err != nil {
		return nil, repo.Wrap(err, "employee not found")
	}
	dto := FromModel(updated)
	return &dto, nil
}

// AttachDocument records an uploaded file on the employee. Profile pictures
// replace profile_picture_url; anything else is appended to id_documents.
func (s *service) AttachDocument(ctx context.Context, employeeID uuid.UUID, docType, url string, at time.Time) (*EmployeeDTO, error) {
	var updated *models.Employee
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		employee, err := txRepo.FindByIDForUpdate(ctx, employeeID)
		if err != nil {
			return err
		}
		if docType == DocumentTypeProfilePicture {
			err = txRepo.Update(ctx, employeeID, map[string]any{"profile_picture_url": url})
		} else {
			docs := append([]models.IDDocument{}, employee.IDDocuments...)
			docs = append(docs, models.IDDocument{URL: url, Type: docType, UploadedAt: at.UTC()})
			err = txRepo.SetDocuments(ctx, employeeID, docs)
		}
		if err != nil {
			return err
		}
		loaded, err := txRepo.FindByID(ctx, employeeID)
		if err != nil {
			return err
		}
		updated = loaded
		return nil
	})
	if err != nil {
		return nil, repo.Wrap(err, "employee not found")
	}
	dto := FromModel(updated)
	return &dto, nil
}

// Exists returns NOT_FOUND when the employee is missing.
func (s *service) Exists(ctx context.Context, employeeID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, employeeID); err != nil {
		return repo.Wrap(err, "employee not found")
	}
	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func normalizeOptional(value *string, lower bool) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	if lower {
		trimmed = strings.ToLower(trimmed)
	}
	return &trimmed
}
