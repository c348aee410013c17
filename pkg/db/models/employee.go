package models

import (
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// IDDocument is one uploaded identification file referenced from an employee.
type IDDocument struct {
	URL        string    `json:"url"`
	Type       string    `json:"type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Employee is a station staff member. Station membership lives in
// employee_stations; Stations is populated by preloading.
type Employee struct {
	ID                uuid.UUID                       `gorm:"type:uuid;primaryKey"`
	FirstName         string                          `gorm:"column:first_name;not null"`
	LastName          string                          `gorm:"column:last_name;not null"`
	Email             *string                         `gorm:"column:email;uniqueIndex"`
	PhoneNumber       *string                         `gorm:"column:phone_number"`
	Role              enums.EmployeeRole              `gorm:"column:role;type:text;not null"`
	ProfilePictureURL *string                         `gorm:"column:profile_picture_url"`
	IDDocuments       datatypes.JSONSlice[IDDocument] `gorm:"column:id_documents;not null"`
	IsActive          bool                            `gorm:"column:is_active;not null;default:true"`
	Stations          []EmployeeStation               `gorm:"foreignKey:EmployeeID"`
	CreatedAt         time.Time                       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time                       `gorm:"column:updated_at;autoUpdateTime"`
}

func (e *Employee) BeforeCreate(*gorm.DB) error {
	ensureID(&e.ID)
	if e.IDDocuments == nil {
		e.IDDocuments = datatypes.JSONSlice[IDDocument]{}
	}
	return nil
}

// StationIDs lists the stations the employee is linked to.
func (e Employee) StationIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(e.Stations))
	for _, link := range e.Stations {
		ids = append(ids, link.GasStationID)
	}
	return ids
}

// EmployeeStation links an employee to a station.
type EmployeeStation struct {
	EmployeeID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	GasStationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (EmployeeStation) TableName() string { return "employee_stations" }
