package entity

import "time"

// Unit representa una unidad de medida (ej: Pieza/pza, Kilogramo/kg).
type Unit struct {
	ID           string
	Name         string
	Abbreviation string // única
	Active       bool
	CreatedAt    time.Time
}
