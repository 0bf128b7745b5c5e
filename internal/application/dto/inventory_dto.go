package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/movements.
type RegisterMovementRequest struct {
	ProductID   string          `json:"product_id"`
	Type        string          `json:"type"` // entrada | salida
	Quantity    decimal.Decimal `json:"quantity"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date"` // YYYY-MM-DD
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	CreatedBy   string          `json:"created_by,omitempty"`
}

// MovementListResponse listado de movimientos (más reciente primero).
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}

// KardexEntryDTO línea del kardex: movimiento + saldo después de aplicarlo.
type KardexEntryDTO struct {
	Movement MovementResponse `json:"movement"`
	Balance  decimal.Decimal  `json:"balance"`
}

// KardexResponse kardex de un producto. Entries va de la más reciente a la más antigua;
// los saldos corresponden al historial completo aunque haya filtro de fechas.
type KardexResponse struct {
	Product        ProductResponse  `json:"product"`
	From           *string          `json:"from,omitempty"`
	To             *string          `json:"to,omitempty"`
	OpeningBalance decimal.Decimal  `json:"opening_balance"` // saldo antes de From
	ClosingBalance decimal.Decimal  `json:"closing_balance"` // saldo de la línea más reciente del rango
	Entries        []KardexEntryDTO `json:"entries"`
}

// LowStockItemDTO producto en o por debajo de su stock mínimo.
type LowStockItemDTO struct {
	Product      ProductResponse `json:"product"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
}

// InventorySummaryDTO totales del inventario (conteo de unidades, sin costeo).
type InventorySummaryDTO struct {
	TotalProducts int             `json:"total_products"`
	TotalStock    decimal.Decimal `json:"total_stock"`
}

// ImportRowDTO una fila de la importación de inventario inicial.
// Unit acepta abreviatura o nombre; Group el nombre. Ambos sin distinguir mayúsculas.
type ImportRowDTO struct {
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	Group           string          `json:"group"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
}

// ImportRequest body para POST /api/inventory/import.
type ImportRequest struct {
	Rows []ImportRowDTO `json:"rows"`
}

// ImportResultDTO resultado de la importación.
type ImportResultDTO struct {
	ProductsCreated  int      `json:"products_created"`
	MovementsCreated int      `json:"movements_created"`
	Errors           []string `json:"errors"`
}
