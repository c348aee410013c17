package controllers

import (
	"github.com/angelmondragon/stationdesk-backend/internal/analytics"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
)

func AnalyticsProcedures(svc analytics.Service, logg *logger.Logger) []Procedure {
	return []Procedure{
		{Name: "analytics.revenue", Kind: Query, Access: Authenticated, Handler: handle(logg, svc.Revenue)},
		{Name: "analytics.profit", Kind: Query, Access: Authenticated, Handler: handle(logg, svc.Profit)},
	}
}
