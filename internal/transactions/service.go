package transactions

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/stationdesk-backend/internal/repo"
	"github.com/angelmondragon/stationdesk-backend/internal/shifts"
	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/google/uuid"
)

type transactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	ByDateRange(ctx context.Context, stationID uuid.UUID, from, to time.Time) ([]models.Transaction, error)
}

// Service records ledger transactions. Rows are immutable once written.
type Service interface {
	Create(ctx context.Context, input CreateTransactionInput) (*TransactionDTO, error)
	ByDateRange(ctx context.Context, input shifts.DateRangeInput) ([]TransactionDTO, error)
}

type service struct {
	repo transactionRepository
}

func NewService(repo transactionRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("transaction repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateTransactionInput) (*TransactionDTO, error) {
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid transaction type")
	}
	txn := &models.Transaction{
		GasStationID:    input.GasStationID,
		ShiftReportID:   input.ShiftClosingReportID,
		Type:            input.Type,
		Amount:          input.Amount,
		Description:     input.Description,
		TransactionDate: input.TransactionDate.UTC(),
	}
	if err := s.repo.Create(ctx, txn); err != nil {
		return nil, repo.Wrap(err, "create transaction")
	}
	dto := FromModel(txn)
	return &dto, nil
}

func (s *service) ByDateRange(ctx context.Context, input shifts.DateRangeInput) ([]TransactionDTO, error) {
	rows, err := s.repo.ByDateRange(ctx, input.GasStationID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, repo.Wrap(err, "list transactions")
	}
	out := make([]TransactionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out, nil
}
