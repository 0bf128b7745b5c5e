package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
)

// MovementFilter filtros para listar movimientos. Campos vacíos o nil no filtran.
// From y To son inclusivos sobre la fecha de negocio. Limit <= 0 = sin límite.
type MovementFilter struct {
	ProductID string
	From      *time.Time
	To        *time.Time
	Limit     int
}

// MovementRepository define el puerto de persistencia para movimientos (solo alta y lectura).
// List devuelve los movimientos del más reciente al más antiguo por (fecha, created_at).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
}
