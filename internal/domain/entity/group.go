package entity

import "time"

// Group representa un grupo (familia) de productos.
type Group struct {
	ID          string
	Name        string // único
	Description string // vacío si no tiene
	Active      bool
	CreatedAt   time.Time
}
