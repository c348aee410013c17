package models

import (
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FuelInventory holds one row per station and grade.
type FuelInventory struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	GasStationID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_fuel_inventory_station_grade"`
	FuelGrade    enums.FuelGrade `gorm:"column:fuel_grade;type:text;not null;uniqueIndex:idx_fuel_inventory_station_grade"`
	Quantity     int64           `gorm:"column:quantity;not null;default:0"`
	LastUpdated  time.Time       `gorm:"column:last_updated;not null"`
}

func (FuelInventory) TableName() string { return "fuel_inventory" }

func (f *FuelInventory) BeforeCreate(*gorm.DB) error {
	ensureID(&f.ID)
	return nil
}
