package fuelinventory

import (
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
)

type InventoryDTO struct {
	ID           uuid.UUID       `json:"id"`
	GasStationID uuid.UUID       `json:"gasStationId"`
	FuelGrade    enums.FuelGrade `json:"fuelGrade"`
	Quantity     int64           `json:"quantity"`
	LastUpdated  time.Time       `json:"lastUpdated"`
}

type UpdateInput struct {
	GasStationID uuid.UUID       `json:"gasStationId" validate:"required"`
	FuelGrade    enums.FuelGrade `json:"fuelGrade" validate:"required"`
	Quantity     int64           `json:"quantity" validate:"min=0"`
}

type ByStationInput struct {
	GasStationID uuid.UUID `json:"gasStationId" validate:"required"`
}

func FromModel(f *models.FuelInventory) InventoryDTO {
	return InventoryDTO{
		ID:           f.ID,
		GasStationID: f.GasStationID,
		FuelGrade:    f.FuelGrade,
		Quantity:     f.Quantity,
		LastUpdated:  f.LastUpdated,
	}
}
