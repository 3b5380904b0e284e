package domain

import "time"

type Ticket struct {
	ID       int64 `json:"id"`
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
	FlightID int64 `json:"flight_id"`
	OrderID  int64 `json:"order_id"`
}

type Order struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	Tickets   []Ticket  `json:"tickets"`
}

// TicketRequest is one seat asked for inside an order.
type TicketRequest struct {
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
	FlightID int64 `json:"flight_id"`
}

// TicketView is a ticket as listed in a user's order history.
type TicketView struct {
	ID            int64     `json:"id"`
	Row           int       `json:"row"`
	Seat          int       `json:"seat"`
	FlightID      int64     `json:"flight_id"`
	Route         string    `json:"route"`
	AirplaneName  string    `json:"airplane_name"`
	DepartureTime time.Time `json:"departure_time"`
}

type OrderView struct {
	ID        int64        `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Tickets   []TicketView `json:"tickets"`
}
