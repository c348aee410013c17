package fueldeliveries

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/stationdesk-backend/internal/repo"
	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service records fuel deliveries with their line items.
type Service interface {
	Create(ctx context.Context, input CreateDeliveryInput) (*DeliveryDTO, error)
	ByStation(ctx context.Context, stationID uuid.UUID) ([]DeliveryDTO, error)
	Items(ctx context.Context, deliveryID uuid.UUID) ([]ItemDTO, error)
}

type service struct {
	repo *Repository
	tx   txRunner
}

func NewService(repo *Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("fuel delivery repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// Create writes the header and every item in one transaction. Item cost is
// computed here and stored; it is never re-derived.
func (s *service) Create(ctx context.Context, input CreateDeliveryInput) (*DeliveryDTO, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one delivery item is required")
	}
	type pricedItem struct {
		cost, total int64
	}
	priced := make([]pricedItem, len(input.Items))
	for idx, item := range input.Items {
		if !item.FuelGrade.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid fuel grade").
				WithDetails(map[string]any{"item": idx, "fuelGrade": item.FuelGrade})
		}
		if item.Quantity > MaxItemQuantity || item.PricePerGallon > MaxItemPricePerGallon {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery item quantity or price out of range").
				WithDetails(map[string]any{"item": idx, "maxQuantity": MaxItemQuantity, "maxPricePerGallon": MaxItemPricePerGallon})
		}
		cost, total, err := ItemCost(item.FuelGrade, item.PricePerGallon, item.Quantity)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "delivery item total out of range").
				WithDetails(map[string]any{"item": idx})
		}
		priced[idx] = pricedItem{cost: cost, total: total}
	}

	delivery := &models.FuelDelivery{
		GasStationID:       input.GasStationID,
		Supplier:           input.Supplier,
		BillOfLadingNumber: strings.TrimSpace(input.BillOfLadingNumber),
		DeliveryDate:       input.DeliveryDate.UTC(),
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.CreateDelivery(ctx, delivery); err != nil {
			return err
		}
		items := make([]models.FuelDeliveryItem, 0, len(input.Items))
		for idx, in := range input.Items {
			item := models.FuelDeliveryItem{
				FuelDeliveryID: delivery.ID,
				FuelGrade:      in.FuelGrade,
				Quantity:       in.Quantity,
				PricePerGallon: in.PricePerGallon,
				Cost:           priced[idx].cost,
				TotalCost:      priced[idx].total,
				YellowMark:     in.YellowMark,
				RedMark:        in.RedMark,
			}
			if err := txRepo.CreateItem(ctx, &item); err != nil {
				return err
			}
			items = append(items, item)
		}
		delivery.Items = items
		return nil
	})
	if err != nil {
		return nil, repo.Wrap(err, "create fuel delivery")
	}
	dto := FromModel(delivery)
	return &dto, nil
}

func (s *service) ByStation(ctx context.Context, stationID uuid.UUID) ([]DeliveryDTO, error) {
	rows, err := s.repo.ByStation(ctx, stationID)
	if err != nil {
		return nil, repo.Wrap(err, "list fuel deliveries")
	}
	out := make([]DeliveryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Items(ctx context.Context, deliveryID uuid.UUID) ([]ItemDTO, error) {
	rows, err := s.repo.Items(ctx, deliveryID)
	if err != nil {
		return nil, repo.Wrap(err, "list fuel delivery items")
	}
	return itemsFromModels(rows), nil
}
