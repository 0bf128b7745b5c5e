package repository

import (
	"context"

	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
)

// UnitRepository define el puerto de persistencia para Unit (DIP).
type UnitRepository interface {
	Create(ctx context.Context, unit *entity.Unit) error
	GetByID(ctx context.Context, id string) (*entity.Unit, error)
	GetByAbbreviation(ctx context.Context, abbreviation string) (*entity.Unit, error)
	Update(ctx context.Context, unit *entity.Unit) error
	// List ordena por nombre ascendente. activeOnly=false incluye inactivas.
	List(ctx context.Context, activeOnly bool) ([]*entity.Unit, error)
}
