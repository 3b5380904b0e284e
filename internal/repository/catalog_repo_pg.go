package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository stores the reference data flights are built from.
type CatalogRepository interface {
	CreateAirport(ctx context.Context, airport *domain.Airport) error
	ListAirports(ctx context.Context, filter domain.AirportFilter) ([]domain.Airport, error)

	CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error
	ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error)

	CreateCrew(ctx context.Context, crew *domain.Crew) error
	ListCrews(ctx context.Context) ([]domain.Crew, error)

	CreateAirplane(ctx context.Context, airplane *domain.Airplane) error
	ListAirplanes(ctx context.Context, filter domain.AirplaneFilter) ([]domain.Airplane, error)
	GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error)

	CreateRoute(ctx context.Context, route *domain.Route) error
	ListRoutes(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, error)
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)
}

type PGCatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &PGCatalogRepository{db: db}
}

func (r *PGCatalogRepository) CreateAirport(ctx context.Context, airport *domain.Airport) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airports (name) VALUES ($1) RETURNING id`, airport.Name).Scan(&airport.ID)
	return mapError(err)
}

func (r *PGCatalogRepository) ListAirports(ctx context.Context, filter domain.AirportFilter) ([]domain.Airport, error) {
	query := `SELECT id, name FROM airports`
	var args []any
	if filter.Name != "" {
		query += ` WHERE name ILIKE $1`
		args = append(args, likePattern(filter.Name))
	}
	rows, err := r.db.Query(ctx, query+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query airports: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Airport])
}

func (r *PGCatalogRepository) CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airplane_types (name) VALUES ($1) RETURNING id`, t.Name).Scan(&t.ID)
	return mapError(err)
}

func (r *PGCatalogRepository) ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM airplane_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query airplane types: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[domain.AirplaneType])
}

func (r *PGCatalogRepository) CreateCrew(ctx context.Context, crew *domain.Crew) error {
	err := r.db.QueryRow(ctx, `INSERT INTO crews (first_name, last_name) VALUES ($1, $2) RETURNING id`,
		crew.FirstName, crew.LastName).Scan(&crew.ID)
	return mapError(err)
}

func (r *PGCatalogRepository) ListCrews(ctx context.Context) ([]domain.Crew, error) {
	rows, err := r.db.Query(ctx, `SELECT id, first_name, last_name FROM crews ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query crews: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Crew])
}

func (r *PGCatalogRepository) CreateAirplane(ctx context.Context, airplane *domain.Airplane) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airplanes (name, rows, seats_in_row, airplane_type_id)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		airplane.Name, airplane.Rows, airplane.SeatsInRow, airplane.AirplaneTypeID).Scan(&airplane.ID)
	return mapError(err)
}

const airplaneSelect = `SELECT a.id, a.name, a.rows, a.seats_in_row, a.airplane_type_id, COALESCE(apt.name, ''), a.image
FROM airplanes a LEFT JOIN airplane_types apt ON apt.id = a.airplane_type_id`

func buildAirplaneListQuery(filter domain.AirplaneFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if filter.Name != "" {
		args = append(args, likePattern(filter.Name))
		where = append(where, fmt.Sprintf("a.name ILIKE $%d", len(args)))
	}
	if len(filter.TypeIDs) > 0 {
		args = append(args, filter.TypeIDs)
		where = append(where, fmt.Sprintf("a.airplane_type_id = ANY($%d)", len(args)))
	}
	query := airplaneSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	return query + " ORDER BY a.id", args
}

func (r *PGCatalogRepository) ListAirplanes(ctx context.Context, filter domain.AirplaneFilter) ([]domain.Airplane, error) {
	query, args := buildAirplaneListQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query airplanes: %w", err)
	}
	return pgx.CollectRows(rows, scanAirplane)
}

func (r *PGCatalogRepository) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	rows, err := r.db.Query(ctx, airplaneSelect+` WHERE a.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("query airplane: %w", err)
	}
	a, err := pgx.CollectExactlyOneRow(rows, scanAirplane)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func scanAirplane(row pgx.CollectableRow) (domain.Airplane, error) {
	var a domain.Airplane
	err := row.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID, &a.AirplaneType, &a.Image)
	return a, err
}

func (r *PGCatalogRepository) CreateRoute(ctx context.Context, route *domain.Route) error {
	err := r.db.QueryRow(ctx, `WITH inserted AS (
		INSERT INTO routes (source_id, destination_id, distance) VALUES ($1, $2, $3) RETURNING id, source_id, destination_id
	)
	SELECT i.id, src.name, dst.name FROM inserted i
	JOIN airports src ON src.id = i.source_id
	JOIN airports dst ON dst.id = i.destination_id`,
		route.Source.ID, route.Destination.ID, route.Distance).Scan(&route.ID, &route.Source.Name, &route.Destination.Name)
	return mapError(err)
}

const routeSelect = `SELECT r.id, r.distance, src.id, src.name, dst.id, dst.name
FROM routes r
JOIN airports src ON src.id = r.source_id
JOIN airports dst ON dst.id = r.destination_id`

func (r *PGCatalogRepository) ListRoutes(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, error) {
	var (
		where []string
		args  []any
	)
	if filter.SourceID != nil {
		args = append(args, *filter.SourceID)
		where = append(where, fmt.Sprintf("r.source_id = $%d", len(args)))
	}
	if filter.DestinationID != nil {
		args = append(args, *filter.DestinationID)
		where = append(where, fmt.Sprintf("r.destination_id = $%d", len(args)))
	}
	query := routeSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	rows, err := r.db.Query(ctx, query+" ORDER BY r.id", args...)
	if err != nil {
		return nil, fmt.Errorf("query routes: %w", err)
	}
	return pgx.CollectRows(rows, scanRoute)
}

func (r *PGCatalogRepository) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	rows, err := r.db.Query(ctx, routeSelect+` WHERE r.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("query route: %w", err)
	}
	route, err := pgx.CollectExactlyOneRow(rows, scanRoute)
	if err != nil {
		return nil, mapError(err)
	}
	return &route, nil
}

func scanRoute(row pgx.CollectableRow) (domain.Route, error) {
	var rt domain.Route
	err := row.Scan(&rt.ID, &rt.Distance, &rt.Source.ID, &rt.Source.Name, &rt.Destination.ID, &rt.Destination.Name)
	return rt, err
}

// likePattern escapes LIKE metacharacters so the name filter matches a
// plain substring.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

var _ CatalogRepository = (*PGCatalogRepository)(nil)
