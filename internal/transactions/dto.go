package transactions

import (
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
)

type TransactionDTO struct {
	ID                   uuid.UUID             `json:"id"`
	GasStationID         uuid.UUID             `json:"gasStationId"`
	ShiftClosingReportID *uuid.UUID            `json:"shiftClosingReportId"`
	Type                 enums.TransactionType `json:"type"`
	Amount               int64                 `json:"amount"`
	Description          *string               `json:"description"`
	TransactionDate      time.Time             `json:"transactionDate"`
	CreatedAt            time.Time             `json:"createdAt"`
}

type CreateTransactionInput struct {
	GasStationID         uuid.UUID             `json:"gasStationId" validate:"required"`
	ShiftClosingReportID *uuid.UUID            `json:"shiftClosingReportId"`
	Type                 enums.TransactionType `json:"type" validate:"required"`
	Amount               int64                 `json:"amount"`
	Description          *string               `json:"description"`
	TransactionDate      time.Time             `json:"transactionDate" validate:"required"`
}

func FromModel(t *models.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:                   t.ID,
		GasStationID:         t.GasStationID,
		ShiftClosingReportID: t.ShiftReportID,
		Type:                 t.Type,
		Amount:               t.Amount,
		Description:          t.Description,
		TransactionDate:      t.TransactionDate,
		CreatedAt:            t.CreatedAt,
	}
}
