package repository

import (
	"context"

	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
)

// GroupRepository define el puerto de persistencia para Group (DIP).
type GroupRepository interface {
	Create(ctx context.Context, group *entity.Group) error
	GetByID(ctx context.Context, id string) (*entity.Group, error)
	GetByName(ctx context.Context, name string) (*entity.Group, error)
	Update(ctx context.Context, group *entity.Group) error
	// List ordena por nombre ascendente. activeOnly=false incluye inactivos.
	List(ctx context.Context, activeOnly bool) ([]*entity.Group, error)
}
