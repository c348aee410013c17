package models

import (
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShiftReport is the closing report for a shift. Amounts are cents.
type ShiftReport struct {
	ID              uuid.UUID          `gorm:"type:uuid;primaryKey"`
	ShiftID         uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex"`
	StationNumber   *string            `gorm:"column:station_number"`
	TotalSales      int64              `gorm:"column:total_sales;not null;default:0"`
	TotalTax        int64              `gorm:"column:total_tax;not null;default:0"`
	CashAmount      int64              `gorm:"column:cash_amount;not null;default:0"`
	CreditAmount    int64              `gorm:"column:credit_amount;not null;default:0"`
	DebitAmount     int64              `gorm:"column:debit_amount;not null;default:0"`
	MobileAmount    int64              `gorm:"column:mobile_amount;not null;default:0"`
	OverShortAmount int64              `gorm:"column:over_short_amount;not null;default:0"`
	FuelSales       int64              `gorm:"column:fuel_sales;not null;default:0"`
	GrocerySales    int64              `gorm:"column:grocery_sales;not null;default:0"`
	Notes           *string            `gorm:"column:notes"`
	Status          enums.ReportStatus `gorm:"column:status;type:text;not null;default:pending"`
	ReviewedBy      *uuid.UUID         `gorm:"type:uuid;column:reviewed_by"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (r *ShiftReport) BeforeCreate(*gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
