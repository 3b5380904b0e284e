package domain

import "time"

type Flight struct {
	ID            int64
	AirplaneID    int64
	RouteID       int64
	DepartureTime time.Time
	ArrivalTime   time.Time
	CrewIDs       []int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FlightSummary is a flight row as served by listings, with the seat
// availability already aggregated.
type FlightSummary struct {
	ID               int64     `json:"id"`
	Route            string    `json:"route"`
	RouteID          int64     `json:"route_id"`
	AirplaneID       int64     `json:"airplane_id"`
	AirplaneName     string    `json:"airplane_name"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	AirplaneCapacity int       `json:"airplane_capacity"`
	TicketsAvailable int       `json:"tickets_available"`
}

type Place struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type FlightDetail struct {
	ID               int64     `json:"id"`
	Route            Route     `json:"route"`
	Airplane         Airplane  `json:"airplane"`
	Crew             []Crew    `json:"crew"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	TicketsAvailable int       `json:"tickets_available"`
	TakenPlaces      []Place   `json:"taken_places"`
}
