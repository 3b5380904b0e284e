package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
)

type CatalogUseCase interface {
	CreateAirport(ctx context.Context, name string) (*domain.Airport, error)
	ListAirports(ctx context.Context, filter domain.AirportFilter) ([]domain.Airport, error)
	CreateAirplaneType(ctx context.Context, name string) (*domain.AirplaneType, error)
	ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error)
	CreateCrew(ctx context.Context, firstName, lastName string) (*domain.Crew, error)
	ListCrews(ctx context.Context) ([]domain.Crew, error)
	CreateAirplane(ctx context.Context, input AirplaneInput) (*domain.Airplane, error)
	ListAirplanes(ctx context.Context, filter domain.AirplaneFilter) ([]domain.Airplane, error)
	GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error)
	CreateRoute(ctx context.Context, input RouteInput) (*domain.Route, error)
	ListRoutes(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, error)
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)
}

type AirplaneInput struct {
	Name           string
	Rows           int
	SeatsInRow     int
	AirplaneTypeID *int64
}

// RouteInput may name the same airport twice; such routes are accepted.
type RouteInput struct {
	SourceID      int64
	DestinationID int64
	Distance      int
}

type CatalogService struct {
	repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) CreateAirport(ctx context.Context, name string) (*domain.Airport, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name is required")
	}
	airport := &domain.Airport{Name: name}
	if err := s.repo.CreateAirport(ctx, airport); err != nil {
		return nil, err
	}
	return airport, nil
}

func (s *CatalogService) ListAirports(ctx context.Context, filter domain.AirportFilter) ([]domain.Airport, error) {
	return s.repo.ListAirports(ctx, filter)
}

func (s *CatalogService) CreateAirplaneType(ctx context.Context, name string) (*domain.AirplaneType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name is required")
	}
	t := &domain.AirplaneType{Name: name}
	if err := s.repo.CreateAirplaneType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *CatalogService) ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	return s.repo.ListAirplaneTypes(ctx)
}

func (s *CatalogService) CreateCrew(ctx context.Context, firstName, lastName string) (*domain.Crew, error) {
	crew := &domain.Crew{FirstName: strings.TrimSpace(firstName), LastName: strings.TrimSpace(lastName)}
	if crew.FirstName == "" || crew.LastName == "" {
		return nil, invalid("first_name and last_name are required")
	}
	if err := s.repo.CreateCrew(ctx, crew); err != nil {
		return nil, err
	}
	return crew, nil
}

func (s *CatalogService) ListCrews(ctx context.Context) ([]domain.Crew, error) {
	return s.repo.ListCrews(ctx)
}

func (s *CatalogService) CreateAirplane(ctx context.Context, input AirplaneInput) (*domain.Airplane, error) {
	name := strings.TrimSpace(input.Name)
	switch {
	case name == "":
		return nil, invalid("name is required")
	case input.Rows < 1:
		return nil, invalid("rows must be positive")
	case input.SeatsInRow < 1:
		return nil, invalid("seats_in_row must be positive")
	}
	airplane := &domain.Airplane{
		Name:           name,
		Rows:           input.Rows,
		SeatsInRow:     input.SeatsInRow,
		AirplaneTypeID: input.AirplaneTypeID,
	}
	if err := s.repo.CreateAirplane(ctx, airplane); err != nil {
		return nil, err
	}
	return airplane, nil
}

func (s *CatalogService) ListAirplanes(ctx context.Context, filter domain.AirplaneFilter) ([]domain.Airplane, error) {
	return s.repo.ListAirplanes(ctx, filter)
}

func (s *CatalogService) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	return s.repo.GetAirplane(ctx, id)
}

func (s *CatalogService) CreateRoute(ctx context.Context, input RouteInput) (*domain.Route, error) {
	switch {
	case input.SourceID <= 0:
		return nil, invalid("source is required")
	case input.DestinationID <= 0:
		return nil, invalid("destination is required")
	case input.Distance < 0:
		return nil, invalid("distance must not be negative")
	}
	route := &domain.Route{
		Source:      domain.Airport{ID: input.SourceID},
		Destination: domain.Airport{ID: input.DestinationID},
		Distance:    input.Distance,
	}
	if err := s.repo.CreateRoute(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

func (s *CatalogService) ListRoutes(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, error) {
	return s.repo.ListRoutes(ctx, filter)
}

func (s *CatalogService) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	return s.repo.GetRoute(ctx, id)
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
}

var _ CatalogUseCase = (*CatalogService)(nil)
