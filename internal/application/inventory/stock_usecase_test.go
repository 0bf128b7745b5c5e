package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/almacen-kardex/internal/application/inventory"
	"github.com/jhoicas/almacen-kardex/internal/domain"
	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
	"github.com/jhoicas/almacen-kardex/internal/domain/inventory"
	"github.com/jhoicas/almacen-kardex/internal/domain/repository"
	"github.com/jhoicas/almacen-kardex/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) time.Time {
	t, err := entity.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// seedCatalog crea una unidad y un grupo activos.
func seedCatalog(t *testing.T, store *memory.Store) (unitID, groupID string) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, store.Units().Create(ctx, &entity.Unit{ID: "u-1", Name: "Unidad", Abbreviation: "und", Active: true, CreatedAt: now}))
	require.NoError(t, store.Groups().Create(ctx, &entity.Group{ID: "g-1", Name: "Ferretería", Active: true, CreatedAt: now}))
	return "u-1", "g-1"
}

func seedProduct(t *testing.T, store *memory.Store, id, code string, minStock string, active bool) {
	t.Helper()
	now := time.Now()
	require.NoError(t, store.Products().Create(context.Background(), &entity.Product{
		ID: id, Code: code, Name: "Producto " + code, UnitID: "u-1", GroupID: "g-1",
		MinStock: dec(minStock), Active: active, CreatedAt: now, UpdatedAt: now,
	}))
}

func seedMovement(t *testing.T, store *memory.Store, id, productID, typ, qty, date string, created time.Time) {
	t.Helper()
	require.NoError(t, store.Movements().Create(context.Background(), &entity.Movement{
		ID: id, ProductID: productID, Type: typ, Quantity: dec(qty), Date: day(date), CreatedAt: created,
	}))
}

func newStockUseCase(store *memory.Store) *appinv.StockUseCase {
	return appinv.NewStockUseCase(store.Products(), store.Movements())
}

var base = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Stock actual
// ──────────────────────────────────────────────────────────────────────────────

func TestCurrentStock_SinMovimientosEsCero(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	seedProduct(t, store, "p-1", "A001", "0", true)

	stock, err := newStockUseCase(store).CurrentStock(context.Background(), "p-1")
	require.NoError(t, err)
	assert.True(t, stock.IsZero())
}

func TestCurrentStock_ProductoInexistenteEsCeroSinError(t *testing.T) {
	stock, err := newStockUseCase(memory.NewStore()).CurrentStock(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.True(t, stock.IsZero())
}

func TestCurrentStock_EntradasMenosSalidas(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	seedProduct(t, store, "p-1", "A001", "0", true)
	seedMovement(t, store, "m-1", "p-1", entity.MovementTypeEntry, "100", "2024-01-01", base)
	seedMovement(t, store, "m-2", "p-1", entity.MovementTypeExit, "30", "2024-01-05", base)

	resp, err := newStockUseCase(store).Stock(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", resp.ProductID)
	assert.True(t, resp.CurrentStock.Equal(dec("70")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Kardex
// ──────────────────────────────────────────────────────────────────────────────

func TestKardex_ProductoInexistenteDevuelveNotFound(t *testing.T) {
	_, err := newStockUseCase(memory.NewStore()).Kardex(context.Background(), "no-existe", inventory.DateRange{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKardex_RangoInvertidoSeRechazaAntesDeConsultar(t *testing.T) {
	from, to := day("2024-02-01"), day("2024-01-01")
	// Producto inexistente: si se consultara devolvería NotFound.
	_, err := newStockUseCase(memory.NewStore()).Kardex(context.Background(), "no-existe", inventory.DateRange{From: &from, To: &to})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestKardex_SinMovimientosListaVacia(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	seedProduct(t, store, "p-1", "A001", "0", true)

	k, err := newStockUseCase(store).Kardex(context.Background(), "p-1", inventory.DateRange{})
	require.NoError(t, err)
	assert.Empty(t, k.Entries)
	assert.True(t, k.OpeningBalance.IsZero())
	assert.True(t, k.ClosingBalance.IsZero())
}

func TestKardex_MasRecientePrimeroConSaldos(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	seedProduct(t, store, "p-1", "A001", "0", true)
	seedMovement(t, store, "m-1", "p-1", entity.MovementTypeEntry, "100", "2024-01-01", base)
	seedMovement(t, store, "m-2", "p-1", entity.MovementTypeExit, "30", "2024-01-05", base)

	uc := newStockUseCase(store)
	k, err := uc.Kardex(context.Background(), "p-1", inventory.DateRange{})
	require.NoError(t, err)
	require.Len(t, k.Entries, 2)
	assert.Equal(t, "m-2", k.Entries[0].Movement.ID)
	assert.True(t, k.Entries[0].Balance.Equal(dec("70")))
	assert.Equal(t, "m-1", k.Entries[1].Movement.ID)
	assert.True(t, k.Entries[1].Balance.Equal(dec("100")))
	assert.Equal(t, "A001", k.Product.Code)

	stock, err := uc.CurrentStock(context.Background(), "p-1")
	require.NoError(t, err)
	assert.True(t, k.ClosingBalance.Equal(stock), "sin rango, el último saldo es el stock actual")
}

func TestKardex_RangoConservaSaldosDelHistorialCompleto(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	seedProduct(t, store, "p-1", "A001", "0", true)
	seedMovement(t, store, "m-1", "p-1", entity.MovementTypeEntry, "100", "2024-01-01", base)
	seedMovement(t, store, "m-2", "p-1", entity.MovementTypeExit, "30", "2024-01-05", base)
	seedMovement(t, store, "m-3", "p-1", entity.MovementTypeEntry, "10", "2024-01-10", base)

	from, to := day("2024-01-05"), day("2024-01-05")
	k, err := newStockUseCase(store).Kardex(context.Background(), "p-1", inventory.DateRange{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, k.Entries, 1)
	assert.Equal(t, "m-2", k.Entries[0].Movement.ID)
	assert.True(t, k.Entries[0].Balance.Equal(dec("70")))
	assert.True(t, k.OpeningBalance.Equal(dec("100")))
	assert.True(t, k.ClosingBalance.Equal(dec("70")))
	require.NotNil(t, k.From)
	assert.Equal(t, "2024-01-05", *k.From)
}

func TestKardex_DesempatePorFechaDeRegistro(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	seedProduct(t, store, "p-1", "A001", "0", true)
	seedMovement(t, store, "m-50", "p-1", entity.MovementTypeEntry, "50", "2024-01-01", base.Add(time.Hour)) // 10:00
	seedMovement(t, store, "m-20", "p-1", entity.MovementTypeEntry, "20", "2024-01-01", base)                // 09:00

	k, err := newStockUseCase(store).Kardex(context.Background(), "p-1", inventory.DateRange{})
	require.NoError(t, err)
	require.Len(t, k.Entries, 2)
	assert.Equal(t, "m-50", k.Entries[0].Movement.ID)
	assert.True(t, k.Entries[0].Balance.Equal(dec("70")))
	assert.Equal(t, "m-20", k.Entries[1].Movement.ID)
	assert.True(t, k.Entries[1].Balance.Equal(dec("20")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock bajo y resumen
// ──────────────────────────────────────────────────────────────────────────────

func TestDetectLowStock_UmbralInclusivo(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	seedProduct(t, store, "p-1", "A001", "5", true)
	seedMovement(t, store, "m-1", "p-1", entity.MovementTypeEntry, "5", "2024-01-01", base)
	uc := newStockUseCase(store)

	low, err := uc.DetectLowStock(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "p-1", low[0].Product.ID)
	assert.True(t, low[0].CurrentStock.Equal(dec("5")))
	assert.True(t, low[0].MinStock.Equal(dec("5")))

	// Una entrada más (+1) lo saca de la lista.
	seedMovement(t, store, "m-2", "p-1", entity.MovementTypeEntry, "1", "2024-01-02", base)
	low, err = uc.DetectLowStock(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, low)
}

func TestDetectLowStock_MinimoCeroNuncaSeMarca(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	seedProduct(t, store, "p-1", "A001", "0", true)
	seedMovement(t, store, "m-1", "p-1", entity.MovementTypeExit, "3", "2024-01-01", base)

	low, err := newStockUseCase(store).DetectLowStock(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, low)
}

func TestInventorySummary_IncluyeInactivosSalvoFiltro(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	seedProduct(t, store, "p-1", "A001", "0", true)
	seedProduct(t, store, "p-2", "A002", "0", false)
	seedMovement(t, store, "m-1", "p-1", entity.MovementTypeEntry, "10", "2024-01-01", base)
	seedMovement(t, store, "m-2", "p-2", entity.MovementTypeEntry, "2.5", "2024-01-01", base)
	uc := newStockUseCase(store)

	all, err := uc.InventorySummary(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.TotalProducts)
	assert.True(t, all.TotalStock.Equal(dec("12.5")))

	active := true
	only, err := uc.InventorySummary(context.Background(), repository.ProductFilter{Active: &active})
	require.NoError(t, err)
	assert.Equal(t, 1, only.TotalProducts)
	assert.True(t, only.TotalStock.Equal(dec("10")))
}

func TestOverview_ResumenYStockBajoCoinciden(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	seedProduct(t, store, "p-1", "A001", "10", true)
	seedMovement(t, store, "m-1", "p-1", entity.MovementTypeEntry, "10", "2024-01-01", base)

	summary, low, err := newStockUseCase(store).Overview(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalProducts)
	require.Len(t, low, 1)
	assert.True(t, low[0].CurrentStock.Equal(summary.TotalStock))
}
