package inventory

import (
	"context"

	"github.com/jhoicas/almacen-kardex/internal/application/dto"
	"github.com/jhoicas/almacen-kardex/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Products  repository.ProductRepository
	Units     repository.UnitRepository
	Groups    repository.GroupRepository
	Movements repository.MovementRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

// ReportPDFGenerator genera los reportes imprimibles del inventario.
type ReportPDFGenerator interface {
	GenerateKardexPDF(ctx context.Context, kardex *dto.KardexResponse) ([]byte, error)
	GenerateLowStockPDF(ctx context.Context, items []dto.LowStockItemDTO) ([]byte, error)
}
