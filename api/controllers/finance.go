package controllers

import (
	"github.com/angelmondragon/stationdesk-backend/internal/expenses"
	"github.com/angelmondragon/stationdesk-backend/internal/transactions"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
)

func TransactionProcedures(svc transactions.Service, logg *logger.Logger) []Procedure {
	return []Procedure{
		{Name: "transactions.create", Kind: Mutation, Access: Authenticated, Handler: handle(logg, svc.Create)},
		{Name: "transactions.byDateRange", Kind: Query, Access: Authenticated, Handler: handle(logg, svc.ByDateRange)},
	}
}

func ExpenseProcedures(svc expenses.Service, logg *logger.Logger) []Procedure {
	return []Procedure{
		{Name: "expenses.create", Kind: Mutation, Access: Authenticated, Handler: handle(logg, svc.Create)},
		{Name: "expenses.byDateRange", Kind: Query, Access: Authenticated, Handler: handle(logg, svc.ByDateRange)},
		{Name: "expenses.byCategory", Kind: Query, Access: Authenticated, Handler: handle(logg, svc.ByCategory)},
	}
}
