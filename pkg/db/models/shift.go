package models

import (
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shift is active while EndTime is nil.
type Shift struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey"`
	GasStationID uuid.UUID         `gorm:"type:uuid;not null"`
	EmployeeID   uuid.UUID         `gorm:"type:uuid;not null"`
	StartTime    time.Time         `gorm:"column:start_time;not null"`
	EndTime      *time.Time        `gorm:"column:end_time"`
	Status       enums.ShiftStatus `gorm:"column:status;type:text;not null;default:open"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (s *Shift) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

func (s Shift) Active() bool {
	return s.EndTime == nil
}
