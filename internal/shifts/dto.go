package shifts

import (
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
)

type ShiftDTO struct {
	ID           uuid.UUID         `json:"id"`
	GasStationID uuid.UUID         `json:"gasStationId"`
	EmployeeID   uuid.UUID         `json:"employeeId"`
	StartTime    time.Time         `json:"startTime"`
	EndTime      *time.Time        `json:"endTime"`
	Status       enums.ShiftStatus `json:"status"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

type CreateShiftInput struct {
	GasStationID uuid.UUID `json:"gasStationId" validate:"required"`
	EmployeeID   uuid.UUID `json:"employeeId" validate:"required"`
	StartTime    time.Time `json:"startTime" validate:"required"`
}

type EndShiftInput struct {
	ShiftID uuid.UUID `json:"shiftId" validate:"required"`
	EndTime time.Time `json:"endTime" validate:"required"`
}

type ActiveShiftsInput struct {
	GasStationID *uuid.UUID `json:"gasStationId"`
}

// DateRangeInput is shared by every per-station range query.
type DateRangeInput struct {
	GasStationID uuid.UUID `json:"gasStationId" validate:"required"`
	StartDate    time.Time `json:"startDate" validate:"required"`
	EndDate      time.Time `json:"endDate" validate:"required,gtefield=StartDate"`
}

func FromModel(s *models.Shift) ShiftDTO {
	return ShiftDTO{
		ID:           s.ID,
		GasStationID: s.GasStationID,
		EmployeeID:   s.EmployeeID,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func fromModels(rows []models.Shift) []ShiftDTO {
	out := make([]ShiftDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
