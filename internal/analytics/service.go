package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/stationdesk-backend/internal/repo"
	"github.com/angelmondragon/stationdesk-backend/internal/shifts"
	"github.com/google/uuid"
)

type revenueSource interface {
	Revenue(ctx context.Context, stationID uuid.UUID, from, to time.Time) (Revenue, error)
}

type expenseTotaler interface {
	Total(ctx context.Context, stationID uuid.UUID, from, to time.Time) (int64, error)
}

// Service reports station revenue and profit.
type Service interface {
	Revenue(ctx context.Context, input shifts.DateRangeInput) (*Revenue, error)
	Profit(ctx context.Context, input shifts.DateRangeInput) (*Profit, error)
}

type service struct {
	revenue  revenueSource
	expenses expenseTotaler
}

func NewService(revenue revenueSource, expenses expenseTotaler) (Service, error) {
	if revenue == nil {
		return nil, fmt.Errorf("revenue source required")
	}
	if expenses == nil {
		return nil, fmt.Errorf("expense totaler required")
	}
	return &service{revenue: revenue, expenses: expenses}, nil
}

func (s *service) Revenue(ctx context.Context, input shifts.DateRangeInput) (*Revenue, error) {
	out, err := s.revenue.Revenue(ctx, input.GasStationID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, repo.Wrap(err, "aggregate revenue")
	}
	return &out, nil
}

func (s *service) Profit(ctx context.Context, input shifts.DateRangeInput) (*Profit, error) {
	rev, err := s.Revenue(ctx, input)
	if err != nil {
		return nil, err
	}
	spent, err := s.expenses.Total(ctx, input.GasStationID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, repo.Wrap(err, "aggregate expenses")
	}
	return &Profit{
		Revenue:  rev.TotalRevenue,
		Expenses: spent,
		Profit:   rev.TotalRevenue - spent,
	}, nil
}
