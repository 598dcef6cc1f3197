package entity

import "time"

// Customer representa un cliente del negocio. Tiene a lo sumo una Account activa.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
