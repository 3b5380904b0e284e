package domain

import "fmt"

type Airport struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Route struct {
	ID          int64   `json:"id"`
	Source      Airport `json:"source"`
	Destination Airport `json:"destination"`
	Distance    int     `json:"distance"`
}

// Label renders the route the way listings show it.
func (r Route) Label() string {
	return fmt.Sprintf("%s - %s", r.Source.Name, r.Destination.Name)
}

type Crew struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
