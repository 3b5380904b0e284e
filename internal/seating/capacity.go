// Package seating holds the seat arithmetic shared by flight listings
// and the order transaction: capacity, availability and bounds checks.
package seating

import "github.com/Domenick1991/airport/internal/domain"

// AvailableSeats returns how many seats of the airplane are not yet
// covered by a ticket. It never looks at seat identities.
func AvailableSeats(airplane domain.Airplane, ticketCount int) int {
	return airplane.Capacity() - ticketCount
}
