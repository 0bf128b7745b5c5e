// Package inventory contiene el motor de saldos (kardex) como funciones puras sobre
// el historial de movimientos. El stock nunca se almacena: se recalcula en cada lectura.
package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-kardex/internal/domain"
	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
)

// Entry es una línea del kardex: el movimiento y el saldo inmediatamente después de aplicarlo.
type Entry struct {
	Movement *entity.Movement
	Balance  decimal.Decimal
}

// DateRange rango inclusivo sobre la fecha de negocio. Extremos nil = abierto.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Validate devuelve domain.ErrInvalidRange si From es posterior a To.
func (r DateRange) Validate() error {
	if r.From != nil && r.To != nil && entity.DateOnly(*r.From).After(entity.DateOnly(*r.To)) {
		return domain.ErrInvalidRange
	}
	return nil
}

// Contains informa si la fecha de negocio d cae dentro del rango.
func (r DateRange) Contains(d time.Time) bool {
	day := entity.DateOnly(d)
	if r.From != nil && day.Before(entity.DateOnly(*r.From)) {
		return false
	}
	if r.To != nil && day.After(entity.DateOnly(*r.To)) {
		return false
	}
	return true
}

// Unbounded informa si el rango no filtra nada.
func (r DateRange) Unbounded() bool {
	return r.From == nil && r.To == nil
}

// Signed devuelve la cantidad con signo: positiva para entradas, negativa para cualquier otro tipo.
func Signed(m *entity.Movement) decimal.Decimal {
	if m.IsEntry() {
		return m.Quantity
	}
	return m.Quantity.Neg()
}

// CurrentStock suma entradas y resta salidas de todo el historial, en cualquier orden.
func CurrentStock(movements []*entity.Movement) decimal.Decimal {
	stock := decimal.Zero
	for _, m := range movements {
		stock = stock.Add(Signed(m))
	}
	return stock
}

// Chronological devuelve una copia ordenada por (fecha de negocio, created_at, id) ascendente.
// El id solo desempata registros con el mismo created_at.
func Chronological(movements []*entity.Movement) []*entity.Movement {
	sorted := make([]*entity.Movement, len(movements))
	copy(sorted, movements)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		da, db := entity.DateOnly(a.Date), entity.DateOnly(b.Date)
		if !da.Equal(db) {
			return da.Before(db)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return sorted
}

// Replay recorre el historial en orden cronológico partiendo de saldo 0 y devuelve
// una línea por movimiento, en orden cronológico.
func Replay(movements []*entity.Movement) []Entry {
	ordered := Chronological(movements)
	entries := make([]Entry, 0, len(ordered))
	balance := decimal.Zero
	for _, m := range ordered {
		balance = balance.Add(Signed(m))
		entries = append(entries, Entry{Movement: m, Balance: balance})
	}
	return entries
}

// Ledger es el kardex tal como se muestra: se reproduce el historial completo, se conservan
// solo las líneas dentro del rango (sin recalcular saldos) y se devuelven de la más reciente
// a la más antigua. También devuelve el saldo previo al rango.
func Ledger(movements []*entity.Movement, window DateRange) (entries []Entry, opening decimal.Decimal) {
	replayed := Replay(movements)
	opening = decimal.Zero
	entries = make([]Entry, 0, len(replayed))
	for _, e := range replayed {
		if window.From != nil && entity.DateOnly(e.Movement.Date).Before(entity.DateOnly(*window.From)) {
			opening = e.Balance
			continue
		}
		if window.Contains(e.Movement.Date) {
			entries = append(entries, e)
		}
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, opening
}

// IsLowStock política de stock bajo: hay umbral (mínimo > 0) y el stock lo alcanzó (≤).
func IsLowStock(minimum, stock decimal.Decimal) bool {
	return minimum.GreaterThan(decimal.Zero) && stock.LessThanOrEqual(minimum)
}
