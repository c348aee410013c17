package fuelinventory

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/stationdesk-backend/internal/repo"
	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/google/uuid"
)

type inventoryRepository interface {
	Upsert(ctx context.Context, stationID uuid.UUID, grade enums.FuelGrade, quantity int64, at time.Time) (*models.FuelInventory, error)
	ByStation(ctx context.Context, stationID uuid.UUID) ([]models.FuelInventory, error)
}

// Service tracks on-hand fuel per station and grade.
type Service interface {
	Update(ctx context.Context, input UpdateInput) (*InventoryDTO, error)
	ByStation(ctx context.Context, stationID uuid.UUID) ([]InventoryDTO, error)
}

type service struct {
	repo inventoryRepository
	now  func() time.Time
}

func NewService(repo inventoryRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("fuel inventory repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*InventoryDTO, error) {
	if !input.FuelGrade.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid fuel grade")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	row, err := s.repo.Upsert(ctx, input.GasStationID, input.FuelGrade, input.Quantity, s.now())
	if err != nil {
		return nil, repo.Wrap(err, "update fuel inventory")
	}
	dto := FromModel(row)
	return &dto, nil
}

func (s *service) ByStation(ctx context.Context, stationID uuid.UUID) ([]InventoryDTO, error) {
	rows, err := s.repo.ByStation(ctx, stationID)
	if err != nil {
		return nil, repo.Wrap(err, "list fuel inventory")
	}
	out := make([]InventoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out, nil
}
