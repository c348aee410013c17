package shiftreports

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/stationdesk-backend/internal/repo"
	"github.com/angelmondragon/stationdesk-backend/internal/shifts"
	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/google/uuid"
)

type reportRepository interface {
	Create(ctx context.Context, report *models.ShiftReport) error
	FindShift(ctx context.Context, shiftID uuid.UUID) (*models.Shift, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ShiftReport, error)
	ByShift(ctx context.Context, shiftID uuid.UUID) ([]models.ShiftReport, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ReportStatus, reviewer uuid.UUID) error
	ByDateRange(ctx context.Context, stationID uuid.UUID, from, to time.Time) ([]models.ShiftReport, map[uuid.UUID]models.Shift, error)
}

// Service exposes shift closing reports.
type Service interface {
	Create(ctx context.Context, input CreateReportInput) (*ReportDTO, error)
	ByShift(ctx context.Context, shiftID uuid.UUID) ([]ReportDTO, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput, reviewer uuid.UUID) (*ReportDTO, error)
	ByDateRange(ctx context.Context, input shifts.DateRangeInput) ([]ReportWithShiftDTO, error)
}

type service struct {
	repo reportRepository
}

func NewService(repo reportRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shift report repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateReportInput) (*ReportDTO, error) {
	if _, err := s.repo.FindShift(ctx, input.ShiftID); err != nil {
		return nil, repo.Wrap(err, "shift not found")
	}

	report := &models.ShiftReport{
		ShiftID:         input.ShiftID,
		StationNumber:   input.StationNumber,
		TotalSales:      input.TotalSales,
		TotalTax:        input.TotalTax,
		CashAmount:      input.CashAmount,
		CreditAmount:    input.CreditAmount,
		DebitAmount:     input.DebitAmount,
		MobileAmount:    input.MobileAmount,
		OverShortAmount: input.OverShortAmount,
		FuelSales:       input.FuelSales,
		GrocerySales:    input.GrocerySales,
		Notes:           input.Notes,
		Status:          enums.ReportStatusPending,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, repo.Wrap(err, "shift already has a closing report")
	}
	dto := FromModel(report)
	return &dto, nil
}

func (s *service) ByShift(ctx context.Context, shiftID uuid.UUID) ([]ReportDTO, error) {
	rows, err := s.repo.ByShift(ctx, shiftID)
	if err != nil {
		return nil, repo.Wrap(err, "list shift reports")
	}
	out := make([]ReportDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput, reviewer uuid.UUID) (*ReportDTO, error) {
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid report status")
	}
	if reviewer == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "reviewer identity missing")
	}
	if err := s.repo.UpdateStatus(ctx, input.ReportID, input.Status, reviewer); err != nil {
		return nil, repo.Wrap(err, "shift report not found")
	}
	report, err := s.repo.FindByID(ctx, input.ReportID)
	if err != nil {
		return nil, repo.Wrap(err, "shift report not found")
	}
	dto := FromModel(report)
	return &dto, nil
}

func (s *service) ByDateRange(ctx context.Context, input shifts.DateRangeInput) ([]ReportWithShiftDTO, error) {
	reports, shiftsByID, err := s.repo.ByDateRange(ctx, input.GasStationID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, repo.Wrap(err, "list shift reports")
	}
	out := make([]ReportWithShiftDTO, 0, len(reports))
	for i := range reports {
		shift := shiftsByID[reports[i].ShiftID]
		out = append(out, ReportWithShiftDTO{
			Report: FromModel(&reports[i]),
			Shift:  shifts.FromModel(&shift),
		})
	}
	return out, nil
}
