package employees

import (
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
)

type EmployeeDTO struct {
	ID                uuid.UUID           `json:"id"`
	GasStationIDs     []uuid.UUID         `json:"gasStationIds"`
	FirstName         string              `json:"firstName"`
	LastName          string              `json:"lastName"`
	Email             *string             `json:"email"`
	PhoneNumber       *string             `json:"phoneNumber"`
	Role              enums.EmployeeRole  `json:"role"`
	ProfilePictureURL *string             `json:"profilePictureUrl"`
	IDDocuments       []models.IDDocument `json:"idDocuments"`
	IsActive          bool                `json:"isActive"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

// CreateEmployeeInput accepts either gasStationIds or the single-station
// gasStationId form.
type CreateEmployeeInput struct {
	GasStationIDs []uuid.UUID        `json:"gasStationIds" validate:"omitempty,dive,required"`
	GasStationID  *uuid.UUID         `json:"gasStationId"`
	FirstName     string             `json:"firstName" validate:"required,max=100"`
	LastName      string             `json:"lastName" validate:"required,max=100"`
	Email         *string            `json:"email" validate:"omitempty,email,max=320"`
	PhoneNumber   *string            `json:"phoneNumber" validate:"omitempty,max=20"`
	Role          enums.EmployeeRole `json:"role" validate:"required"`
}

// UpdateEmployeeInput carries a partial update. Nil fields are left as is.
type UpdateEmployeeInput struct {
	ID            uuid.UUID           `json:"id" validate:"required"`
	FirstName     *string             `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName      *string             `json:"lastName" validate:"omitempty,min=1,max=100"`
	Email         *string             `json:"email" validate:"omitempty,email,max=320"`
	PhoneNumber   *string             `json:"phoneNumber" validate:"omitempty,max=20"`
	Role          *enums.EmployeeRole `json:"role"`
	IsActive      *bool               `json:"isActive"`
	GasStationIDs []uuid.UUID         `json:"gasStationIds" validate:"omitempty,dive,required"`
}

type ByStationInput struct {
	GasStationID uuid.UUID `json:"gasStationId" validate:"required"`
}

func FromModel(e *models.Employee) EmployeeDTO {
	docs := make([]models.IDDocument, 0, len(e.IDDocuments))
	docs = append(docs, e.IDDocuments...)
	return EmployeeDTO{
		ID:                e.ID,
		GasStationIDs:     e.StationIDs(),
		FirstName:         e.FirstName,
		LastName:          e.LastName,
		Email:             e.Email,
		PhoneNumber:       e.PhoneNumber,
		Role:              e.Role,
		ProfilePictureURL: e.ProfilePictureURL,
		IDDocuments:       docs,
		IsActive:          e.IsActive,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func fromModels(rows []models.Employee) []EmployeeDTO {
	out := make([]EmployeeDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
