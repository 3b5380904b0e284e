package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderTx is the view of the database an order sees while it is being
// created. Everything done through it commits or rolls back together.
type OrderTx interface {
	// LockFlight locks the flight row until the transaction ends and
	// returns the airplane flying it.
	LockFlight(ctx context.Context, flightID int64) (domain.Airplane, error)
	SeatTaken(ctx context.Context, flightID int64, row, seat int) (bool, error)
	CreateOrder(ctx context.Context, order *domain.Order) error
	CreateTicket(ctx context.Context, ticket *domain.Ticket) error
}

type OrderRepository interface {
	WithinTx(ctx context.Context, fn func(tx OrderTx) error) error
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.OrderView, error)
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

// WithinTx runs fn in a read committed transaction. Concurrent orders for
// the same flight queue up on the flight row lock taken by LockFlight, and
// the unique index on tickets (flight_id, row, seat) backs that up.
func (r *PGOrderRepository) WithinTx(ctx context.Context, fn func(tx OrderTx) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgOrderTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *PGOrderRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.OrderView, error) {
	rows, err := r.db.Query(ctx, `SELECT o.id, o.created_at, t.id, t."row", t.seat, t.flight_id,
		src.name, dst.name, a.name, f.departure_time
	FROM orders o
	JOIN tickets t ON t.order_id = o.id
	JOIN flights f ON f.id = t.flight_id
	JOIN airplanes a ON a.id = f.airplane_id
	JOIN routes r ON r.id = f.route_id
	JOIN airports src ON src.id = r.source_id
	JOIN airports dst ON dst.id = r.destination_id
	WHERE o.user_id = $1
	ORDER BY o.created_at DESC, o.id DESC, t.id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.OrderView, 0)
	for rows.Next() {
		var (
			o     domain.OrderView
			t     domain.TicketView
			route domain.Route
		)
		if err := rows.Scan(&o.ID, &o.CreatedAt, &t.ID, &t.Row, &t.Seat, &t.FlightID,
			&route.Source.Name, &route.Destination.Name, &t.AirplaneName, &t.DepartureTime); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		t.Route = route.Label()
		if n := len(orders); n > 0 && orders[n-1].ID == o.ID {
			orders[n-1].Tickets = append(orders[n-1].Tickets, t)
			continue
		}
		o.Tickets = []domain.TicketView{t}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

type pgOrderTx struct {
	tx pgx.Tx
}

func (t *pgOrderTx) LockFlight(ctx context.Context, flightID int64) (domain.Airplane, error) {
	var a domain.Airplane
	err := t.tx.QueryRow(ctx, `SELECT a.id, a.name, a.rows, a.seats_in_row
		FROM flights f JOIN airplanes a ON a.id = f.airplane_id
		WHERE f.id = $1
		FOR UPDATE OF f`, flightID).Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow)
	if err != nil {
		return domain.Airplane{}, mapError(err)
	}
	return a, nil
}

func (t *pgOrderTx) SeatTaken(ctx context.Context, flightID int64, row, seat int) (bool, error) {
	var taken bool
	err := t.tx.QueryRow(ctx, `SELECT EXISTS (
		SELECT 1 FROM tickets WHERE flight_id = $1 AND "row" = $2 AND seat = $3
	)`, flightID, row, seat).Scan(&taken)
	return taken, err
}

func (t *pgOrderTx) CreateOrder(ctx context.Context, order *domain.Order) error {
	err := t.tx.QueryRow(ctx, `INSERT INTO orders (user_id, created_at) VALUES ($1, $2) RETURNING id`,
		order.OwnerID, order.CreatedAt).Scan(&order.ID)
	return mapError(err)
}

func (t *pgOrderTx) CreateTicket(ctx context.Context, ticket *domain.Ticket) error {
	err := t.tx.QueryRow(ctx, `INSERT INTO tickets ("row", seat, flight_id, order_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		ticket.Row, ticket.Seat, ticket.FlightID, ticket.OrderID).Scan(&ticket.ID)
	return mapError(err)
}

var _ OrderRepository = (*PGOrderRepository)(nil)
