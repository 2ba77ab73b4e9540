package domain

import "strings"

// ServiceDefinition catalog entry. Immutable reference data.
type ServiceDefinition struct {
	ID              string
	Name            string
	DurationMinutes int
	Price           float64
	Category        string
}

// Catalog is the ordered service list. Order decides ties in matching and the
// free-text scan, so it must be preserved as loaded.
type Catalog []ServiceDefinition

// ByID finds a service by id (case-insensitive)
func (c Catalog) ByID(id string) (*ServiceDefinition, bool) {
	for i := range c {
		if strings.EqualFold(c[i].ID, id) {
			return &c[i], true
		}
	}
	return nil, false
}

// BarberID stable identifier of a barber in the roster
type BarberID string

// Barber roster entry
type Barber struct {
	ID   BarberID
	Name string
}

// Roster ordered list of barbers
type Roster []Barber

// ByID finds a barber by id
func (r Roster) ByID(id BarberID) (*Barber, bool) {
	for i := range r {
		if r[i].ID == id {
			return &r[i], true
		}
	}
	return nil, false
}
