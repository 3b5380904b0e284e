package domain

import "time"

// FlightFilter narrows a flight listing. Nil fields are not applied.
type FlightFilter struct {
	DepartureDate *time.Time
	RouteID       *int64
}

type AirplaneFilter struct {
	Name    string
	TypeIDs []int64
}

type AirportFilter struct {
	Name string
}

type RouteFilter struct {
	SourceID      *int64
	DestinationID *int64
}
