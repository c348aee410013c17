package models

import (
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Transaction struct {
	ID              uuid.UUID             `gorm:"type:uuid;primaryKey"`
	GasStationID    uuid.UUID             `gorm:"type:uuid;not null"`
	ShiftReportID   *uuid.UUID            `gorm:"type:uuid;column:shift_report_id"`
	Type            enums.TransactionType `gorm:"column:type;type:text;not null"`
	Amount          int64                 `gorm:"column:amount;not null"`
	Description     *string               `gorm:"column:description"`
	TransactionDate time.Time             `gorm:"column:transaction_date;not null"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
}

func (t *Transaction) BeforeCreate(*gorm.DB) error {
	ensureID(&t.ID)
	return nil
}
