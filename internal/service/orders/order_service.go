package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/seating"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type OrderUseCase interface {
	CreateOrder(ctx context.Context, ownerID int64, requests []domain.TicketRequest) (*domain.Order, error)
	ListOrders(ctx context.Context, ownerID int64) ([]domain.OrderView, error)
}

type FlightsInvalidator interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type OrderService struct {
	orders             repository.OrderRepository
	cache              FlightsInvalidator
	producer           Producer
	ordersTopic        string
	notificationsTopic string
	log                logrus.FieldLogger
	now                func() time.Time
}

type OrderServiceOption func(*OrderService)

func WithCache(cache FlightsInvalidator) OrderServiceOption {
	return func(s *OrderService) {
		s.cache = cache
	}
}

func WithProducer(producer Producer, ordersTopic, notificationsTopic string) OrderServiceOption {
	return func(s *OrderService) {
		s.producer = producer
		s.ordersTopic = ordersTopic
		s.notificationsTopic = notificationsTopic
	}
}

func NewOrderService(orders repository.OrderRepository, log logrus.FieldLogger, opts ...OrderServiceOption) *OrderService {
	service := &OrderService{
		orders: orders,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateOrder books every requested place for ownerID or none of them.
// Requests are checked in the given order against the flight's tickets as
// seen inside the transaction, so a request also conflicts with the ones
// placed before it in the same order. The first failing request aborts the
// order and is returned as a *domain.SeatError wrapped in ErrOrderAborted.
func (s *OrderService) CreateOrder(ctx context.Context, ownerID int64, requests []domain.TicketRequest) (*domain.Order, error) {
	if len(requests) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	order := &domain.Order{
		OwnerID:   ownerID,
		CreatedAt: s.now().UTC(),
	}

	err := s.orders.WithinTx(ctx, func(tx repository.OrderTx) error {
		order.Tickets = make([]domain.Ticket, 0, len(requests))
		if err := tx.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		airplanes := make(map[int64]domain.Airplane)
		for i, req := range requests {
			airplane, ok := airplanes[req.FlightID]
			if !ok {
				var err error
				airplane, err = tx.LockFlight(ctx, req.FlightID)
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("ticket %d: flight %d: %w", i, req.FlightID, domain.ErrInvalidReference)
				}
				if err != nil {
					return fmt.Errorf("lock flight %d: %w", req.FlightID, err)
				}
				airplanes[req.FlightID] = airplane
			}

			if err := seating.ValidateSeat(req.Row, req.Seat, airplane); err != nil {
				return annotate(err, i, req)
			}

			taken, err := tx.SeatTaken(ctx, req.FlightID, req.Row, req.Seat)
			if err != nil {
				return fmt.Errorf("check seat: %w", err)
			}
			if taken {
				return duplicate(i, req)
			}

			ticket := domain.Ticket{Row: req.Row, Seat: req.Seat, FlightID: req.FlightID, OrderID: order.ID}
			if err := tx.CreateTicket(ctx, &ticket); err != nil {
				if errors.Is(err, domain.ErrDuplicateSeat) {
					return duplicate(i, req)
				}
				return fmt.Errorf("create ticket: %w", err)
			}
			order.Tickets = append(order.Tickets, ticket)
		}
		return nil
	})
	if err != nil {
		var seatErr *domain.SeatError
		if errors.As(err, &seatErr) {
			s.log.WithFields(logrus.Fields{
				"owner_id":  ownerID,
				"flight_id": seatErr.FlightID,
				"row":       seatErr.Row,
				"seat":      seatErr.Seat,
				"reason":    seatErr.ReasonCode(),
			}).Info("order rejected")
			return nil, fmt.Errorf("%w: %w", domain.ErrOrderAborted, seatErr)
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"owner_id": ownerID,
		"tickets":  len(order.Tickets),
	}).Info("order created")

	s.afterCommit(ctx, order)
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, ownerID int64) ([]domain.OrderView, error) {
	return s.orders.ListByOwner(ctx, ownerID)
}

// afterCommit runs the side effects of a committed order. Their failures
// are logged; the order stands.
func (s *OrderService) afterCommit(ctx context.Context, order *domain.Order) {
	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			s.log.WithError(err).Warn("invalidate flights cache")
		}
	}
	if err := s.publish(ctx, order); err != nil {
		s.log.WithError(err).WithField("order_id", order.ID).Warn("publish order event")
	}
}

func (s *OrderService) publish(ctx context.Context, order *domain.Order) error {
	if s.producer == nil || s.ordersTopic == "" {
		return nil
	}
	event := kafka.OrderEvent{
		ID:        uuid.NewString(),
		Type:      kafka.EventOrderCreated,
		OrderID:   order.ID,
		OwnerID:   order.OwnerID,
		CreatedAt: order.CreatedAt,
		Tickets:   make([]kafka.TicketEvent, 0, len(order.Tickets)),
	}
	for _, t := range order.Tickets {
		event.Tickets = append(event.Tickets, kafka.TicketEvent{Row: t.Row, Seat: t.Seat, FlightID: t.FlightID})
	}

	key := fmt.Sprintf("%d", order.ID)
	if err := s.producer.Publish(ctx, s.ordersTopic, key, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, key, event)
	}
	return nil
}

func annotate(err error, index int, req domain.TicketRequest) error {
	var seatErr *domain.SeatError
	if errors.As(err, &seatErr) {
		seatErr.Index = index
		seatErr.FlightID = req.FlightID
	}
	return err
}

func duplicate(index int, req domain.TicketRequest) error {
	return &domain.SeatError{
		Index:    index,
		FlightID: req.FlightID,
		Row:      req.Row,
		Seat:     req.Seat,
		Reason:   domain.ErrDuplicateSeat,
	}
}

var _ OrderUseCase = (*OrderService)(nil)
