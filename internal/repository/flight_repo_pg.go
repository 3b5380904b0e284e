package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/seating"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, error)
	GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightListSelect = `SELECT f.id, f.route_id, f.airplane_id, a.name, a.rows, a.seats_in_row,
	src.name, dst.name, f.departure_time, f.arrival_time, COUNT(t.id)
FROM flights f
JOIN airplanes a ON a.id = f.airplane_id
JOIN routes r ON r.id = f.route_id
JOIN airports src ON src.id = r.source_id
JOIN airports dst ON dst.id = r.destination_id
LEFT JOIN tickets t ON t.flight_id = f.id`

// buildFlightListQuery counts tickets for every listed flight in the same
// statement so a listing costs one round trip regardless of its size.
func buildFlightListQuery(filter domain.FlightFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if filter.DepartureDate != nil {
		day := time.Date(filter.DepartureDate.Year(), filter.DepartureDate.Month(), filter.DepartureDate.Day(), 0, 0, 0, 0, time.UTC)
		args = append(args, day, day.AddDate(0, 0, 1))
		where = append(where, fmt.Sprintf("f.departure_time >= $%d AND f.departure_time < $%d", len(args)-1, len(args)))
	}
	if filter.RouteID != nil {
		args = append(args, *filter.RouteID)
		where = append(where, fmt.Sprintf("f.route_id = $%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString(flightListSelect)
	if len(where) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString("\nGROUP BY f.id, a.id, src.id, dst.id\nORDER BY f.departure_time, f.id")
	return sb.String(), args
}

func (r *PGFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, error) {
	query, args := buildFlightListQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query flights: %w", err)
	}
	defer rows.Close()

	flights := make([]domain.FlightSummary, 0)
	for rows.Next() {
		var (
			f        domain.FlightSummary
			airplane domain.Airplane
			route    domain.Route
			sold     int
		)
		if err := rows.Scan(&f.ID, &f.RouteID, &f.AirplaneID, &airplane.Name, &airplane.Rows, &airplane.SeatsInRow,
			&route.Source.Name, &route.Destination.Name, &f.DepartureTime, &f.ArrivalTime, &sold); err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		f.AirplaneName = airplane.Name
		f.Route = route.Label()
		f.AirplaneCapacity = airplane.Capacity()
		f.TicketsAvailable = seating.AvailableSeats(airplane, sold)
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	row := r.db.QueryRow(ctx, `SELECT f.id, f.departure_time, f.arrival_time,
		a.id, a.name, a.rows, a.seats_in_row, a.airplane_type_id, COALESCE(apt.name, ''), a.image,
		r.id, r.distance, src.id, src.name, dst.id, dst.name
	FROM flights f
	JOIN airplanes a ON a.id = f.airplane_id
	LEFT JOIN airplane_types apt ON apt.id = a.airplane_type_id
	JOIN routes r ON r.id = f.route_id
	JOIN airports src ON src.id = r.source_id
	JOIN airports dst ON dst.id = r.destination_id
	WHERE f.id = $1`, id)

	var d domain.FlightDetail
	if err := row.Scan(&d.ID, &d.DepartureTime, &d.ArrivalTime,
		&d.Airplane.ID, &d.Airplane.Name, &d.Airplane.Rows, &d.Airplane.SeatsInRow, &d.Airplane.AirplaneTypeID, &d.Airplane.AirplaneType, &d.Airplane.Image,
		&d.Route.ID, &d.Route.Distance, &d.Route.Source.ID, &d.Route.Source.Name, &d.Route.Destination.ID, &d.Route.Destination.Name); err != nil {
		return nil, mapError(err)
	}

	crewRows, err := r.db.Query(ctx, `SELECT c.id, c.first_name, c.last_name
		FROM crews c JOIN flight_crews fc ON fc.crew_id = c.id
		WHERE fc.flight_id = $1 ORDER BY c.id`, id)
	if err != nil {
		return nil, fmt.Errorf("query flight crew: %w", err)
	}
	d.Crew, err = pgx.CollectRows(crewRows, func(row pgx.CollectableRow) (domain.Crew, error) {
		var c domain.Crew
		err := row.Scan(&c.ID, &c.FirstName, &c.LastName)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan flight crew: %w", err)
	}

	placeRows, err := r.db.Query(ctx, `SELECT "row", seat FROM tickets WHERE flight_id = $1 ORDER BY "row", seat`, id)
	if err != nil {
		return nil, fmt.Errorf("query taken places: %w", err)
	}
	d.TakenPlaces, err = pgx.CollectRows(placeRows, pgx.RowToStructByPos[domain.Place])
	if err != nil {
		return nil, fmt.Errorf("scan taken places: %w", err)
	}

	d.TicketsAvailable = seating.AvailableSeats(d.Airplane, len(d.TakenPlaces))
	return &d, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO flights (airplane_id, route_id, departure_time, arrival_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`, flight.AirplaneID, flight.RouteID, flight.DepartureTime, flight.ArrivalTime).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt); err != nil {
		return mapError(err)
	}
	if err := replaceCrew(ctx, tx, flight.ID, flight.CrewIDs); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit flight: %w", err)
	}
	return nil
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `UPDATE flights
		SET airplane_id = $1, route_id = $2, departure_time = $3, arrival_time = $4, updated_at = now()
		WHERE id = $5
		RETURNING created_at, updated_at`, flight.AirplaneID, flight.RouteID, flight.DepartureTime, flight.ArrivalTime, flight.ID).
		Scan(&flight.CreatedAt, &flight.UpdatedAt); err != nil {
		return mapError(err)
	}
	if err := clearCrew(ctx, tx, flight.ID); err != nil {
		return err
	}
	if err := replaceCrew(ctx, tx, flight.ID, flight.CrewIDs); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit flight: %w", err)
	}
	return nil
}

// execer is the part of pgx.Tx the crew helpers need.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func clearCrew(ctx context.Context, tx execer, flightID int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM flight_crews WHERE flight_id = $1`, flightID); err != nil {
		return fmt.Errorf("clear flight crew: %w", mapError(err))
	}
	return nil
}

func replaceCrew(ctx context.Context, tx execer, flightID int64, crewIDs []int64) error {
	if len(crewIDs) == 0 {
		return nil
	}
	if _, err := tx.Exec(ctx, `INSERT INTO flight_crews (flight_id, crew_id)
		SELECT $1, unnest($2::bigint[]) ON CONFLICT DO NOTHING`, flightID, crewIDs); err != nil {
		return fmt.Errorf("assign flight crew: %w", mapError(err))
	}
	return nil
}

// Delete removes the flight; its tickets go with it.
func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
