package fueldeliveries

import (
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
)

type DeliveryDTO struct {
	ID                 uuid.UUID `json:"id"`
	GasStationID       uuid.UUID `json:"gasStationId"`
	Supplier           *string   `json:"supplier"`
	BillOfLadingNumber string    `json:"billOfLadingNumber"`
	DeliveryDate       time.Time `json:"deliveryDate"`
	Items              []ItemDTO `json:"items,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// ItemDTO carries prices in cents and quantity in gallons.
type ItemDTO struct {
	ID             uuid.UUID       `json:"id"`
	FuelDeliveryID uuid.UUID       `json:"fuelDeliveryId"`
	FuelGrade      enums.FuelGrade `json:"fuelGrade"`
	Quantity       int64           `json:"quantity"`
	PricePerGallon int64           `json:"pricePerGallon"`
	Cost           int64           `json:"cost"`
	TotalCost      int64           `json:"totalCost"`
	YellowMark     *int64          `json:"yellowMark"`
	RedMark        *int64          `json:"redMark"`
	CreatedAt      time.Time       `json:"createdAt"`
}

type CreateDeliveryInput struct {
	GasStationID       uuid.UUID         `json:"gasStationId" validate:"required"`
	BillOfLadingNumber string            `json:"billOfLadingNumber" validate:"required,max=100"`
	DeliveryDate       time.Time         `json:"deliveryDate" validate:"required"`
	Supplier           *string           `json:"supplier" validate:"omitempty,max=255"`
	Items              []CreateItemInput `json:"items" validate:"required,min=1,dive"`
}

type CreateItemInput struct {
	FuelGrade      enums.FuelGrade `json:"fuelGrade" validate:"required"`
	Quantity       int64           `json:"quantity" validate:"gt=0,max=1000000"`
	PricePerGallon int64           `json:"pricePerGallon" validate:"min=0,max=100000"`
	YellowMark     *int64          `json:"yellowMark"`
	RedMark        *int64          `json:"redMark"`
}

type ByStationInput struct {
	GasStationID uuid.UUID `json:"gasStationId" validate:"required"`
}

type ItemsInput struct {
	DeliveryID uuid.UUID `json:"deliveryId" validate:"required"`
}

func FromModel(d *models.FuelDelivery) DeliveryDTO {
	dto := DeliveryDTO{
		ID:                 d.ID,
		GasStationID:       d.GasStationID,
		Supplier:           d.Supplier,
		BillOfLadingNumber: d.BillOfLadingNumber,
		DeliveryDate:       d.DeliveryDate,
		CreatedAt:          d.CreatedAt,
	}
	if len(d.Items) > 0 {
		dto.Items = itemsFromModels(d.Items)
	}
	return dto
}

func ItemFromModel(i *models.FuelDeliveryItem) ItemDTO {
	return ItemDTO{
		ID:             i.ID,
		FuelDeliveryID: i.FuelDeliveryID,
		FuelGrade:      i.FuelGrade,
		Quantity:       i.Quantity,
		PricePerGallon: i.PricePerGallon,
		Cost:           i.Cost,
		TotalCost:      i.TotalCost,
		YellowMark:     i.YellowMark,
		RedMark:        i.RedMark,
		CreatedAt:      i.CreatedAt,
	}
}

func itemsFromModels(rows []models.FuelDeliveryItem) []ItemDTO {
	out := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ItemFromModel(&rows[i]))
	}
	return out
}
