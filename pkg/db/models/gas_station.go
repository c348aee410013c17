package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GasStation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Address   string    `gorm:"column:address;not null"`
	City      string    `gorm:"column:city;not null"`
	State     string    `gorm:"column:state;not null"`
	ZipCode   string    `gorm:"column:zip_code;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (GasStation) TableName() string { return "gas_stations" }

func (s *GasStation) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
