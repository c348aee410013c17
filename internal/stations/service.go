package stations

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/stationdesk-backend/internal/repo"
	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/google/uuid"
)

type stationRepository interface {
	Create(ctx context.Context, station *models.GasStation) error
	List(ctx context.Context) ([]models.GasStation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.GasStation, error)
}

// Service exposes gas station operations.
type Service interface {
	List(ctx context.Context) ([]StationDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*StationDTO, error)
	Create(ctx context.Context, input CreateStationInput) (*StationDTO, error)
}

type service struct {
	repo stationRepository
}

func NewService(repo stationRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("station repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]StationDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, repo.Wrap(err, "list stations")
	}
	out := make([]StationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*StationDTO, error) {
	station, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repo.Wrap(err, "station not found")
	}
	dto := FromModel(station)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input CreateStationInput) (*StationDTO, error) {
	station := &models.GasStation{
		Name:    strings.TrimSpace(input.Name),
		Address: strings.TrimSpace(input.Address),
		City:    strings.TrimSpace(input.City),
		State:   strings.TrimSpace(input.State),
		ZipCode: strings.TrimSpace(input.ZipCode),
	}
	if err := s.repo.Create(ctx, station); err != nil {
		return nil, repo.Wrap(err, "create station")
	}
	dto := FromModel(station)
	return &dto, nil
}
