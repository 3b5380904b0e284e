package repository

import (
	"errors"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	ticketPlaceConstraint = "tickets_flight_row_seat_key"
)

// mapError turns driver errors into domain errors where the caller can act
// on them and passes everything else through.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if pgErr.ConstraintName == ticketPlaceConstraint {
				return domain.ErrDuplicateSeat
			}
			return domain.ErrInvalidInput
		case pgForeignKeyViolation:
			return domain.ErrInvalidReference
		}
	}
	return err
}
