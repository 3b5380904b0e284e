package domain

type AirplaneType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Airplane struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Rows           int     `json:"rows"`
	SeatsInRow     int     `json:"seats_in_row"`
	AirplaneTypeID *int64  `json:"airplane_type_id,omitempty"`
	AirplaneType   string  `json:"airplane_type,omitempty"`
	Image          *string `json:"image,omitempty"`
}

// Capacity is the number of physical seats on the airplane.
func (a Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}
