package expenses

import (
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
)

type ExpenseDTO struct {
	ID           uuid.UUID             `json:"id"`
	GasStationID uuid.UUID             `json:"gasStationId"`
	Category     enums.ExpenseCategory `json:"category"`
	Amount       int64                 `json:"amount"`
	Description  *string               `json:"description"`
	ExpenseDate  time.Time             `json:"expenseDate"`
	CreatedAt    time.Time             `json:"createdAt"`
}

type CreateExpenseInput struct {
	GasStationID uuid.UUID             `json:"gasStationId" validate:"required"`
	Category     enums.ExpenseCategory `json:"category" validate:"required"`
	Amount       int64                 `json:"amount" validate:"min=0"`
	Description  *string               `json:"description"`
	ExpenseDate  time.Time             `json:"expenseDate" validate:"required"`
}

type ByCategoryInput struct {
	GasStationID uuid.UUID             `json:"gasStationId" validate:"required"`
	Category     enums.ExpenseCategory `json:"category" validate:"required"`
}

func FromModel(e *models.Expense) ExpenseDTO {
	return ExpenseDTO{
		ID:           e.ID,
		GasStationID: e.GasStationID,
		Category:     e.Category,
		Amount:       e.Amount,
		Description:  e.Description,
		ExpenseDate:  e.ExpenseDate,
		CreatedAt:    e.CreatedAt,
	}
}

func fromModels(rows []models.Expense) []ExpenseDTO {
	out := make([]ExpenseDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
