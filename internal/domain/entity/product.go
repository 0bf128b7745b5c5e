package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del almacén.
// El stock no se guarda aquí: siempre se deriva de los movimientos (kardex).
type Product struct {
	ID        string
	Code      string // código de negocio único (activos e inactivos)
	Name      string
	UnitID    string
	GroupID   string
	MinStock  decimal.Decimal // 0 = sin umbral de stock bajo
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeMinStock devuelve el mínimo a persistir: nil o negativo se guarda como 0.
func NormalizeMinStock(v *decimal.Decimal) decimal.Decimal {
	if v == nil || v.IsNegative() {
		return decimal.Zero
	}
	return *v
}
