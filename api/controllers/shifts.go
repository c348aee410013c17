package controllers

import (
	"context"

	"github.com/angelmondragon/stationdesk-backend/internal/shiftreports"
	"github.com/angelmondragon/stationdesk-backend/internal/shifts"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
)

// ShiftProcedures serves the shifts namespace.
func ShiftProcedures(svc shifts.Service, logg *logger.Logger) []Procedure {
	return []Procedure{
		{Name: "shifts.create", Kind: Mutation, Access: Authenticated, Handler: handle(logg, svc.Create)},
		{Name: "shifts.end", Kind: Mutation, Access: Authenticated, Handler: handle(logg, svc.End)},
		{
			Name:   "shifts.active",
			Kind:   Query,
			Access: Authenticated,
			Handler: handle(logg, func(ctx context.Context, in shifts.ActiveShiftsInput) ([]shifts.ShiftDTO, error) {
				return svc.Active(ctx, in.GasStationID)
			}),
		},
		{Name: "shifts.byDateRange", Kind: Query, Access: Authenticated, Handler: handle(logg, svc.ByDateRange)},
	}
}

// ShiftReportProcedures serves the shiftReports namespace. Status changes
// record the caller as reviewer.
func ShiftReportProcedures(svc shiftreports.Service, logg *logger.Logger) []Procedure {
	return []Procedure{
		{Name: "shiftReports.create", Kind: Mutation, Access: Authenticated, Handler: handle(logg, svc.Create)},
		{
			Name:   "shiftReports.byShift",
			Kind:   Query,
			Access: Authenticated,
			Handler: handle(logg, func(ctx context.Context, in shiftreports.ByShiftInput) ([]shiftreports.ReportDTO, error) {
				return svc.ByShift(ctx, in.ShiftID)
			}),
		},
		{
			Name:   "shiftReports.updateStatus",
			Kind:   Mutation,
			Access: Authenticated,
			Handler: handle(logg, func(ctx context.Context, in shiftreports.UpdateStatusInput) (*shiftreports.ReportDTO, error) {
				caller, err := callerFrom(ctx)
				if err != nil {
					return nil, err
				}
				return svc.UpdateStatus(ctx, in, caller.UserID)
			}),
		},
		{Name: "shiftReports.byDateRange", Kind: Query, Access: Authenticated, Handler: handle(logg, svc.ByDateRange)},
	}
}
