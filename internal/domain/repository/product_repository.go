package repository

import (
	"context"

	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
)

// ProductFilter filtros para listar productos. Active nil = activos e inactivos.
type ProductFilter struct {
	Active *bool
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetBy* devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
}
