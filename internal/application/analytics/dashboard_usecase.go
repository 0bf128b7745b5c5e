// Package analytics contiene los casos de uso del tablero principal del almacén.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-kardex/internal/application/dto"
	"github.com/jhoicas/almacen-kardex/internal/application/inventory"
	"github.com/jhoicas/almacen-kardex/internal/domain/repository"
)

// DefaultRecentMovements movimientos recientes mostrados si no se configura otro valor.
const DefaultRecentMovements = 10

// DashboardUseCase arma el resumen del dashboard: totales, stock bajo y últimos movimientos.
// Las cifras de stock salen del StockUseCase; nunca de un valor guardado.
type DashboardUseCase struct {
	stock        *inventory.StockUseCase
	movementRepo repository.MovementRepository
	recent       int
}

// NewDashboardUseCase construye el caso de uso. recent <= 0 usa DefaultRecentMovements.
func NewDashboardUseCase(stock *inventory.StockUseCase, movementRepo repository.MovementRepository, recent int) *DashboardUseCase {
	if recent <= 0 {
		recent = DefaultRecentMovements
	}
	return &DashboardUseCase{stock: stock, movementRepo: movementRepo, recent: recent}
}

// GetSummary construye el DashboardSummaryDTO sobre todos los productos (activos e inactivos).
// Las consultas van una tras otra sobre el contexto del llamador:
//  1. Overview           → TotalProducts, TotalStock, LowStock
//  2. Movimientos (N)    → RecentMovements
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	summary, low, err := uc.stock.Overview(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("dashboard: inventario: %w", err)
	}
	movs, err := uc.movementRepo.List(ctx, repository.MovementFilter{Limit: uc.recent})
	if err != nil {
		return nil, fmt.Errorf("dashboard: movimientos recientes: %w", err)
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:   summary.TotalProducts,
		TotalStock:      summary.TotalStock,
		LowStock:        low,
		RecentMovements: dto.FromMovements(movs),
		GeneratedAt:     time.Now(),
	}, nil
}
