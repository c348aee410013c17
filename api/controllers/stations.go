package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/angelmondragon/stationdesk-backend/internal/stations"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
)

type idInput struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

// StationProcedures serves the gasStations namespace.
func StationProcedures(svc stations.Service, logg *logger.Logger) []Procedure {
	return []Procedure{
		{
			Name:    "gasStations.list",
			Kind:    Query,
			Access:  Authenticated,
			Handler: handleNoInput(logg, svc.List),
		},
		{
			Name:   "gasStations.getById",
			Kind:   Query,
			Access: Authenticated,
			Handler: handle(logg, func(ctx context.Context, in idInput) (*stations.StationDTO, error) {
				return svc.GetByID(ctx, in.ID)
			}),
		},
		{
			Name:    "gasStations.create",
			Kind:    Mutation,
			Access:  Authenticated,
			Handler: handle(logg, svc.Create),
		},
	}
}
