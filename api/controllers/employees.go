package controllers

import (
	"context"

	"github.com/angelmondragon/stationdesk-backend/internal/employees"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
)

// EmployeeProcedures serves the employees namespace.
func EmployeeProcedures(svc employees.Service, logg *logger.Logger) []Procedure {
	return []Procedure{
		{Name: "employees.list", Kind: Query, Access: Authenticated, Handler: handleNoInput(logg, svc.List)},
		{
			Name:   "employees.byStation",
			Kind:   Query,
			Access: Authenticated,
			Handler: handle(logg, func(ctx context.Context, in employees.ByStationInput) ([]employees.EmployeeDTO, error) {
				return svc.ByStation(ctx, in.GasStationID)
			}),
		},
		{Name: "employees.create", Kind: Mutation, Access: Authenticated, Handler: handle(logg, svc.Create)},
		{Name: "employees.update", Kind: Mutation, Access: Authenticated, Handler: handle(logg, svc.Update)},
	}
}
