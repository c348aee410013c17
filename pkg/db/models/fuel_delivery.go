package models

import (
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FuelDelivery is a bill of lading header. Items are written in the same
// transaction.
type FuelDelivery struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey"`
	GasStationID       uuid.UUID          `gorm:"type:uuid;not null"`
	Supplier           *string            `gorm:"column:supplier"`
	BillOfLadingNumber string             `gorm:"column:bill_of_lading_number;not null"`
	DeliveryDate       time.Time          `gorm:"column:delivery_date;not null"`
	Items              []FuelDeliveryItem `gorm:"foreignKey:FuelDeliveryID"`
	CreatedAt          time.Time          `gorm:"column:created_at;autoCreateTime"`
}

func (d *FuelDelivery) BeforeCreate(*gorm.DB) error {
	ensureID(&d.ID)
	return nil
}

// FuelDeliveryItem stores prices in cents and quantity in gallons. Cost and
// TotalCost are computed once at creation.
type FuelDeliveryItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FuelDeliveryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	FuelGrade      enums.FuelGrade `gorm:"column:fuel_grade;type:text;not null"`
	Quantity       int64           `gorm:"column:quantity;not null"`
	PricePerGallon int64           `gorm:"column:price_per_gallon;not null"`
	Cost           int64           `gorm:"column:cost;not null"`
	TotalCost      int64           `gorm:"column:total_cost;not null"`
	YellowMark     *int64          `gorm:"column:yellow_mark"`
	RedMark        *int64          `gorm:"column:red_mark"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (i *FuelDeliveryItem) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}
