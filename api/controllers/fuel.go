package controllers

import (
	"context"

	"github.com/angelmondragon/stationdesk-backend/internal/fueldeliveries"
	"github.com/angelmondragon/stationdesk-backend/internal/fuelinventory"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
)

func FuelDeliveryProcedures(svc fueldeliveries.Service, logg *logger.Logger) []Procedure {
	return []Procedure{
		{Name: "fuelDeliveries.create", Kind: Mutation, Access: Authenticated, Handler: handle(logg, svc.Create)},
		{
			Name:   "fuelDeliveries.byStation",
			Kind:   Query,
			Access: Authenticated,
			Handler: handle(logg, func(ctx context.Context, in fueldeliveries.ByStationInput) ([]fueldeliveries.DeliveryDTO, error) {
				return svc.ByStation(ctx, in.GasStationID)
			}),
		},
		{
			Name:   "fuelDeliveries.items",
			Kind:   Query,
			Access: Authenticated,
			Handler: handle(logg, func(ctx context.Context, in fueldeliveries.ItemsInput) ([]fueldeliveries.ItemDTO, error) {
				return svc.Items(ctx, in.DeliveryID)
			}),
		},
	}
}

func FuelInventoryProcedures(svc fuelinventory.Service, logg *logger.Logger) []Procedure {
	return []Procedure{
		{Name: "fuelInventory.update", Kind: Mutation, Access: Authenticated, Handler: handle(logg, svc.Update)},
		{
			Name:   "fuelInventory.byStation",
			Kind:   Query,
			Access: Authenticated,
			Handler: handle(logg, func(ctx context.Context, in fuelinventory.ByStationInput) ([]fuelinventory.InventoryDTO, error) {
				return svc.ByStation(ctx, in.GasStationID)
			}),
		},
	}
}
