package expenses

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

type expenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	ByDateRange(ctx context.Context, stationID uuid.UUID, from, to time.Time) ([]models.Expense, error)
	ByCategory(ctx context.Context, stationID uuid.UUID, category enums.ExpenseCategory) ([]models.Expense, error)
	Total(ctx context.Context, stationID uuid.UUID, from, to time.Time) (int64, error)
}

// Service records station expenses.
type Service interface {
	Create(ctx context.Context, input CreateExpenseInput) (*ExpenseDTO, error)
	ByDateRange(ctx context.Context, input shifts.DateRangeInput) ([]ExpenseDTO, error)
	ByCategory(ctx context.Context, input ByCategoryInput) ([]ExpenseDTO, error)
	Total(ctx context.Context, stationID uuid.UUID, from, to time.Time) (int64, error)
}

type service struct {
	repo expenseRepository
}

func NewService(repo expenseRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("expense repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateExpenseInput) (*ExpenseDTO, error) {
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid expense category")
	}
	expense := &models.Expense{
		GasStationID: input.GasStationID,
		Category:     input.Category,
		Amount:       input.Amount,
		Description:  input.Description,
		ExpenseDate:  input.ExpenseDate.UTC(),
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, repo.Wrap(err, "create expense")
	}
	dto := FromModel(expense)
	return &dto, nil
}

func (s *service) ByDateRange(ctx context.Context, input shifts.DateRangeInput) ([]ExpenseDTO, error) {
	rows, err := s.repo.ByDateRange(ctx, input.GasStationID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, repo.Wrap(err, "list expenses")
	}
	return fromModels(rows), nil
}

func (s *service) ByCategory(ctx context.Context, input ByCategoryInput) ([]ExpenseDTO, error) {
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid expense category")
	}
	rows, err := s.repo.ByCategory(ctx, input.GasStationID, input.Category)
	if err != nil {
		return nil, repo.Wrap(err, "list expenses")
	}
	return fromModels(rows), nil
}

func (s *service) Total(ctx context.Context, stationID uuid.UUID, from, to time.Time) (int64, error) {
	total, err := s.repo.Total(ctx, stationID, from, to)
	if err != nil {
		return 0, repo.Wrap(err, "sum expenses")
	}
	return total, nil
}
