package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	// Totales sobre todos los productos (activos e inactivos)
	TotalProducts int             `json:"total_products"`
	TotalStock    decimal.Decimal `json:"total_stock"`

	LowStock        []LowStockItemDTO  `json:"low_stock"`
	RecentMovements []MovementResponse `json:"recent_movements"`

	GeneratedAt time.Time `json:"generated_at"`
}
