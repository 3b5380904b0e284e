package orders

import (
	"context"
	"slices"
	"sync"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
)

// memStore is a transactional in-memory OrderRepository. Transactions run
// one at a time on a private copy of the data that is kept only if the
// transaction function succeeds.
type memStore struct {
	mu           sync.Mutex
	airplanes    map[int64]domain.Airplane
	orders       []domain.Order
	tickets      []domain.Ticket
	nextOrderID  int64
	nextTicketID int64
}

func newMemStore(airplanes map[int64]domain.Airplane) *memStore {
	return &memStore{airplanes: airplanes}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(tx repository.OrderTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memTx{
		airplanes:    m.airplanes,
		orders:       slices.Clone(m.orders),
		tickets:      slices.Clone(m.tickets),
		nextOrderID:  m.nextOrderID,
		nextTicketID: m.nextTicketID,
	}
	if err := fn(tx); err != nil {
		return err
	}
	m.orders, m.tickets = tx.orders, tx.tickets
	m.nextOrderID, m.nextTicketID = tx.nextOrderID, tx.nextTicketID
	return nil
}

func (m *memStore) ListByOwner(ctx context.Context, ownerID int64) ([]domain.OrderView, error) {
	return nil, nil
}

func (m *memStore) ticketsFor(flightID int64) []domain.Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Ticket
	for _, t := range m.tickets {
		if t.FlightID == flightID {
			out = append(out, t)
		}
	}
	return out
}

func (m *memStore) orderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

type memTx struct {
	airplanes    map[int64]domain.Airplane
	orders       []domain.Order
	tickets      []domain.Ticket
	nextOrderID  int64
	nextTicketID int64
}

func (t *memTx) LockFlight(ctx context.Context, flightID int64) (domain.Airplane, error) {
	a, ok := t.airplanes[flightID]
	if !ok {
		return domain.Airplane{}, domain.ErrNotFound
	}
	return a, nil
}

func (t *memTx) SeatTaken(ctx context.Context, flightID int64, row, seat int) (bool, error) {
	return slices.ContainsFunc(t.tickets, func(tk domain.Ticket) bool {
		return tk.FlightID == flightID && tk.Row == row && tk.Seat == seat
	}), nil
}

func (t *memTx) CreateOrder(ctx context.Context, order *domain.Order) error {
	t.nextOrderID++
	order.ID = t.nextOrderID
	t.orders = append(t.orders, *order)
	return nil
}

func (t *memTx) CreateTicket(ctx context.Context, ticket *domain.Ticket) error {
	if taken, _ := t.SeatTaken(ctx, ticket.FlightID, ticket.Row, ticket.Seat); taken {
		return domain.ErrDuplicateSeat
	}
	t.nextTicketID++
	ticket.ID = t.nextTicketID
	t.tickets = append(t.tickets, *ticket)
	return nil
}
