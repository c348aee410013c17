package models

import (
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Expense struct {
	ID           uuid.UUID             `gorm:"type:uuid;primaryKey"`
	GasStationID uuid.UUID             `gorm:"type:uuid;not null"`
	Category     enums.ExpenseCategory `gorm:"column:category;type:text;not null"`
	Amount       int64                 `gorm:"column:amount;not null"`
	Description  *string               `gorm:"column:description"`
	ExpenseDate  time.Time             `gorm:"column:expense_date;not null"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime"`
}

func (e *Expense) BeforeCreate(*gorm.DB) error {
	ensureID(&e.ID)
	return nil
}
