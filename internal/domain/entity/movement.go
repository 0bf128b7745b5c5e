package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeEntry = "entrada"
	MovementTypeExit  = "salida"
)

// OpeningBalanceDescription etiqueta fija del movimiento sintético creado por la importación
// de inventario inicial.
const OpeningBalanceDescription = "Saldo inicial (importación de inventario)"

// Movement representa un movimiento de inventario (entrada o salida). Es inmutable una vez creado.
type Movement struct {
	ID          string
	ProductID   string
	Type        string          // entrada, salida
	Quantity    decimal.Decimal // siempre positiva; el signo lo da Type
	Description string
	Date        time.Time // fecha de negocio (día calendario, UTC 00:00)
	CreatedAt   time.Time // fecha de registro; desempate dentro del mismo día
	CreatedBy   string    // UserID, vacío en movimientos importados por CLI
}

// IsEntry informa si el movimiento suma stock. Cualquier otro tipo resta.
func (m *Movement) IsEntry() bool {
	return m.Type == MovementTypeEntry
}

// ValidMovementType informa si t es uno de los tipos aceptados al registrar.
func ValidMovementType(t string) bool {
	return t == MovementTypeEntry || t == MovementTypeExit
}

// DateOnly trunca t al día calendario en UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateLayout formato de las fechas de negocio en la API y en SQLite.
const DateLayout = "2006-01-02"

// ParseDate interpreta una fecha "YYYY-MM-DD".
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}
