package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Code     string           `json:"code" validate:"required,min=1,max=50"`
	Name     string           `json:"name" validate:"required,min=1,max=200"`
	UnitID   string           `json:"unit_id" validate:"required"`
	GroupID  string           `json:"group_id" validate:"required"`
	MinStock *decimal.Decimal `json:"min_stock"`
}

// UpdateProductRequest entrada para editar un producto. Se reemplazan todos los campos
// (como el formulario de edición); Active nil conserva el estado actual.
type UpdateProductRequest struct {
	Code     string           `json:"code" validate:"required,min=1,max=50"`
	Name     string           `json:"name" validate:"required,min=1,max=200"`
	UnitID   string           `json:"unit_id" validate:"required"`
	GroupID  string           `json:"group_id" validate:"required"`
	MinStock *decimal.Decimal `json:"min_stock"`
	Active   *bool            `json:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	UnitID    string          `json:"unit_id"`
	GroupID   string          `json:"group_id"`
	MinStock  decimal.Decimal `json:"min_stock"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductStockResponse producto con su stock actual (derivado de movimientos).
type ProductStockResponse struct {
	ProductResponse
	CurrentStock decimal.Decimal `json:"current_stock"`
}

// ProductListResponse listado de productos con stock.
type ProductListResponse struct {
	Items []ProductStockResponse `json:"items"`
	Total int                    `json:"total"`
}

// StockResponse stock actual de un producto.
type StockResponse struct {
	ProductID    string          `json:"product_id"`
	CurrentStock decimal.Decimal `json:"current_stock"`
}
