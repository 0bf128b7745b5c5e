package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-kardex/internal/application/dto"
	"github.com/jhoicas/almacen-kardex/internal/domain"
	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
	"github.com/jhoicas/almacen-kardex/internal/domain/inventory"
	"github.com/jhoicas/almacen-kardex/internal/domain/repository"
)

// StockUseCase expone el motor de saldos: stock actual, kardex, stock bajo y resumen.
// Todo es de solo lectura y se recalcula desde los movimientos en cada llamada.
type StockUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) *StockUseCase {
	return &StockUseCase{productRepo: productRepo, movementRepo: movementRepo}
}

// CurrentStock entradas menos salidas sobre todo el historial del producto.
// Un producto inexistente no tiene movimientos y devuelve 0 sin error.
func (uc *StockUseCase) CurrentStock(ctx context.Context, productID string) (decimal.Decimal, error) {
	movs, err := uc.movementRepo.List(ctx, repository.MovementFilter{ProductID: productID})
	if err != nil {
		return decimal.Zero, fmt.Errorf("stock actual: %w", err)
	}
	return inventory.CurrentStock(movs), nil
}

// Stock envuelve CurrentStock en su DTO.
func (uc *StockUseCase) Stock(ctx context.Context, productID string) (*dto.StockResponse, error) {
	stock, err := uc.CurrentStock(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{ProductID: productID, CurrentStock: stock}, nil
}

// Kardex devuelve las líneas del producto de la más reciente a la más antigua con el saldo
// acumulado del historial completo. El rango se valida antes de consultar.
// Devuelve domain.ErrNotFound si el producto no existe.
func (uc *StockUseCase) Kardex(ctx context.Context, productID string, window inventory.DateRange) (*dto.KardexResponse, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("kardex: producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	// Se lee todo el historial: el saldo de cada línea depende de lo anterior al rango.
	movs, err := uc.movementRepo.List(ctx, repository.MovementFilter{ProductID: productID})
	if err != nil {
		return nil, fmt.Errorf("kardex: movimientos: %w", err)
	}
	entries, opening := inventory.Ledger(movs, window)

	out := &dto.KardexResponse{
		Product:        dto.FromProduct(product),
		OpeningBalance: opening,
		ClosingBalance: opening,
		Entries:        make([]dto.KardexEntryDTO, 0, len(entries)),
	}
	if window.From != nil {
		s := window.From.Format(entity.DateLayout)
		out.From = &s
	}
	if window.To != nil {
		s := window.To.Format(entity.DateLayout)
		out.To = &s
	}
	if len(entries) > 0 {
		out.ClosingBalance = entries[0].Balance
	}
	for _, e := range entries {
		out.Entries = append(out.Entries, dto.KardexEntryDTO{
			Movement: dto.FromMovement(e.Movement),
			Balance:  e.Balance,
		})
	}
	return out, nil
}

// DetectLowStock productos (según filter) con mínimo > 0 y stock ≤ mínimo, en el orden del repositorio.
func (uc *StockUseCase) DetectLowStock(ctx context.Context, filter repository.ProductFilter) ([]dto.LowStockItemDTO, error) {
	snap, err := uc.snapshot(ctx, filter)
	if err != nil {
		return nil, err
	}
	return snap.lowStock(), nil
}

// InventorySummary cantidad de productos (según filter) y suma de su stock actual.
func (uc *StockUseCase) InventorySummary(ctx context.Context, filter repository.ProductFilter) (*dto.InventorySummaryDTO, error) {
	snap, err := uc.snapshot(ctx, filter)
	if err != nil {
		return nil, err
	}
	s := snap.summary()
	return &s, nil
}

// stockSnapshot productos con su stock actual, calculado con un solo barrido de movimientos.
type stockSnapshot struct {
	products []*entity.Product
	stock    map[string]decimal.Decimal
}

func (uc *StockUseCase) snapshot(ctx context.Context, filter repository.ProductFilter) (*stockSnapshot, error) {
	products, err := uc.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("inventario: productos: %w", err)
	}
	movs, err := uc.movementRepo.List(ctx, repository.MovementFilter{})
	if err != nil {
		return nil, fmt.Errorf("inventario: movimientos: %w", err)
	}
	byProduct := make(map[string][]*entity.Movement, len(products))
	for _, m := range movs {
		byProduct[m.ProductID] = append(byProduct[m.ProductID], m)
	}
	snap := &stockSnapshot{products: products, stock: make(map[string]decimal.Decimal, len(products))}
	for _, p := range products {
		snap.stock[p.ID] = inventory.CurrentStock(byProduct[p.ID])
	}
	return snap, nil
}

func (s *stockSnapshot) lowStock() []dto.LowStockItemDTO {
	out := make([]dto.LowStockItemDTO, 0)
	for _, p := range s.products {
		stock := s.stock[p.ID]
		if inventory.IsLowStock(p.MinStock, stock) {
			out = append(out, dto.LowStockItemDTO{
				Product:      dto.FromProduct(p),
				CurrentStock: stock,
				MinStock:     p.MinStock,
			})
		}
	}
	return out
}

func (s *stockSnapshot) summary() dto.InventorySummaryDTO {
	total := decimal.Zero
	for _, p := range s.products {
		total = total.Add(s.stock[p.ID])
	}
	return dto.InventorySummaryDTO{TotalProducts: len(s.products), TotalStock: total}
}

// Overview resumen y stock bajo sobre el mismo barrido (usado por el dashboard).
func (uc *StockUseCase) Overview(ctx context.Context, filter repository.ProductFilter) (*dto.InventorySummaryDTO, []dto.LowStockItemDTO, error) {
	snap, err := uc.snapshot(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	s := snap.summary()
	return &s, snap.lowStock(), nil
}
