package shifts

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/stationdesk-backend/internal/repo"
	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/google/uuid"
)

type shiftRepository interface {
	Create(ctx context.Context, shift *models.Shift) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shift, error)
	End(ctx context.Context, id uuid.UUID, endTime time.Time) (bool, error)
	Active(ctx context.Context, stationID *uuid.UUID) ([]models.Shift, error)
	ByDateRange(ctx context.Context, stationID uuid.UUID, from, to time.Time) ([]models.Shift, error)
}

// Service manages the shift lifecycle: created open, ended exactly once.
type Service interface {
	Create(ctx context.Context, input CreateShiftInput) (*ShiftDTO, error)
	End(ctx context.Context, input EndShiftInput) (*ShiftDTO, error)
	Active(ctx context.Context, stationID *uuid.UUID) ([]ShiftDTO, error)
	ByDateRange(ctx context.Context, input DateRangeInput) ([]ShiftDTO, error)
}

type service struct {
	repo shiftRepository
}

func NewService(repo shiftRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shift repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateShiftInput) (*ShiftDTO, error) {
	shift := &models.Shift{
		GasStationID: input.GasStationID,
		EmployeeID:   input.EmployeeID,
		StartTime:    input.StartTime.UTC(),
		Status:       enums.ShiftStatusOpen,
	}
	if err := s.repo.Create(ctx, shift); err != nil {
		return nil, repo.Wrap(err, "create shift")
	}
	dto := FromModel(shift)
	return &dto, nil
}

func (s *service) End(ctx context.Context, input EndShiftInput) (*ShiftDTO, error) {
	shift, err := s.repo.FindByID(ctx, input.ShiftID)
	if err != nil {
		return nil, repo.Wrap(err, "shift not found")
	}
	if !shift.Active() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "shift already ended")
	}
	if input.EndTime.Before(shift.StartTime) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "end time precedes start time").
			WithDetails(map[string]any{"startTime": shift.StartTime, "endTime": input.EndTime.UTC()})
	}

	ended, err := s.repo.End(ctx, shift.ID, input.EndTime)
	if err != nil {
		return nil, repo.Wrap(err, "end shift")
	}
	if !ended {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "shift already ended")
	}

	end := input.EndTime.UTC()
	shift.EndTime = &end
	shift.Status = enums.ShiftStatusClosed
	dto := FromModel(shift)
	return &dto, nil
}

func (s *service) Active(ctx context.Context, stationID *uuid.UUID) ([]ShiftDTO, error) {
	rows, err := s.repo.Active(ctx, stationID)
	if err != nil {
		return nil, repo.Wrap(err, "list active shifts")
	}
	return fromModels(rows), nil
}

func (s *service) ByDateRange(ctx context.Context, input DateRangeInput) ([]ShiftDTO, error) {
	rows, err := s.repo.ByDateRange(ctx, input.GasStationID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, repo.Wrap(err, "list shifts")
	}
	return fromModels(rows), nil
}
