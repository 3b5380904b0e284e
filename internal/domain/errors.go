package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidReference = errors.New("referenced object does not exist")
	ErrEmptyOrder       = errors.New("order must contain at least one ticket")
	ErrOrderAborted     = errors.New("order aborted")

	ErrInvalidRow    = errors.New("invalid row")
	ErrInvalidSeat   = errors.New("invalid seat")
	ErrDuplicateSeat = errors.New("seat already taken")
)

// SeatError describes why a single ticket request was rejected.
// Index is the position of the request in the order, Limit the valid
// upper bound for row and seat failures.
type SeatError struct {
	Index    int
	FlightID int64
	Row      int
	Seat     int
	Limit    int
	Reason   error
}

func (e *SeatError) Error() string {
	switch e.Reason {
	case ErrInvalidRow:
		return fmt.Sprintf("ticket %d: row %d must be in range [1, %d]", e.Index, e.Row, e.Limit)
	case ErrInvalidSeat:
		return fmt.Sprintf("ticket %d: seat %d must be in range [1, %d]", e.Index, e.Seat, e.Limit)
	case ErrDuplicateSeat:
		return fmt.Sprintf("ticket %d: row %d seat %d is already taken on flight %d", e.Index, e.Row, e.Seat, e.FlightID)
	default:
		return fmt.Sprintf("ticket %d: %v", e.Index, e.Reason)
	}
}

func (e *SeatError) Unwrap() error {
	return e.Reason
}

// ReasonCode is the stable name of the failure reported to clients.
func (e *SeatError) ReasonCode() string {
	switch e.Reason {
	case ErrInvalidRow:
		return "invalid_row"
	case ErrInvalidSeat:
		return "invalid_seat"
	case ErrDuplicateSeat:
		return "duplicate_seat"
	default:
		return "invalid_ticket"
	}
}
