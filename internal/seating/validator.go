package seating

import "github.com/Domenick1991/airport/internal/domain"

// ValidateSeat checks that row and seat fall inside the airplane's grid.
// Rows are checked before seats.
func ValidateSeat(row, seat int, airplane domain.Airplane) error {
	if row < 1 || row > airplane.Rows {
		return &domain.SeatError{Row: row, Seat: seat, Limit: airplane.Rows, Reason: domain.ErrInvalidRow}
	}
	if seat < 1 || seat > airplane.SeatsInRow {
		return &domain.SeatError{Row: row, Seat: seat, Limit: airplane.SeatsInRow, Reason: domain.ErrInvalidSeat}
	}
	return nil
}
