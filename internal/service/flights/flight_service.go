package flights

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/sirupsen/logrus"
)

type FlightUseCase interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, error)
	GetByID(ctx context.Context, id int64) (*domain.FlightDetail, error)
	Create(ctx context.Context, input FlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

type FlightCache interface {
	GetFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, int64, error)
	SetFlights(ctx context.Context, gen int64, filter domain.FlightFilter, flights []domain.FlightSummary) error
	InvalidateFlights(ctx context.Context) error
}

type FlightInput struct {
	AirplaneID    int64     `json:"airplane"`
	RouteID       int64     `json:"route"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	CrewIDs       []int64   `json:"crew"`
}

// Validate checks presence only. Departure before arrival is not enforced.
func (in FlightInput) Validate() error {
	if in.AirplaneID <= 0 {
		return fmt.Errorf("%w: airplane is required", domain.ErrInvalidInput)
	}
	if in.RouteID <= 0 {
		return fmt.Errorf("%w: route is required", domain.ErrInvalidInput)
	}
	if in.DepartureTime.IsZero() {
		return fmt.Errorf("%w: departure_time is required", domain.ErrInvalidInput)
	}
	if in.ArrivalTime.IsZero() {
		return fmt.Errorf("%w: arrival_time is required", domain.ErrInvalidInput)
	}
	return nil
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
	log   logrus.FieldLogger
}

func NewFlightService(repo repository.FlightRepository, cache FlightCache, log logrus.FieldLogger) *FlightService {
	return &FlightService{repo: repo, cache: cache, log: log}
}

// List serves from the cache when it can. A listing read from the database
// is cached under the generation seen before the read; the cache is skipped
// entirely when that generation is unknown.
func (s *FlightService) List(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, error) {
	var (
		gen       int64
		cacheable bool
	)
	if s.cache != nil {
		cached, g, err := s.cache.GetFlights(ctx, filter)
		if err != nil {
			s.log.WithError(err).Warn("read flights cache")
		} else if cached != nil {
			return cached, nil
		} else {
			gen, cacheable = g, true
		}
	}

	flights, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if cacheable {
		if err := s.cache.SetFlights(ctx, gen, filter, flights); err != nil {
			s.log.WithError(err).Warn("write flights cache")
		}
	}
	return flights, nil
}

// GetByID is never cached: taken places must reflect the latest orders.
func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	return s.repo.GetDetail(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, input FlightInput) (*domain.Flight, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	flight := input.toFlight()
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.WithField("flight_id", flight.ID).Info("flight created")
	return flight, nil
}

func (s *FlightService) Update(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	flight := input.toFlight()
	flight.ID = id
	if err := s.repo.Update(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.WithField("flight_id", id).Info("flight deleted")
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.WithError(err).Warn("invalidate flights cache")
	}
}

func (in FlightInput) toFlight() *domain.Flight {
	return &domain.Flight{
		AirplaneID:    in.AirplaneID,
		RouteID:       in.RouteID,
		DepartureTime: in.DepartureTime,
		ArrivalTime:   in.ArrivalTime,
		CrewIDs:       in.CrewIDs,
	}
}

var _ FlightUseCase = (*FlightService)(nil)
