package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-kardex/internal/application/dto"
	appinv "github.com/jhoicas/almacen-kardex/internal/application/inventory"
	"github.com/jhoicas/almacen-kardex/internal/domain"
	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
	"github.com/jhoicas/almacen-kardex/internal/domain/repository"
	"github.com/jhoicas/almacen-kardex/internal/infrastructure/memory"
)

func newMovementUseCase(t *testing.T) (*appinv.RegisterMovementUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	seedCatalog(t, store)
	seedProduct(t, store, "p-1", "A001", "0", true)
	return appinv.NewRegisterMovementUseCase(store.Products(), store.Movements()), store
}

func TestRegisterMovement_EntradaValida(t *testing.T) {
	uc, store := newMovementUseCase(t)

	resp, err := uc.RegisterMovementFromRequest(context.Background(), "user-1", dto.RegisterMovementRequest{
		ProductID:   "p-1",
		Type:        entity.MovementTypeEntry,
		Quantity:    dec("12.5"),
		Description: "  compra  ",
		Date:        "2024-03-01",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "2024-03-01", resp.Date)
	assert.Equal(t, "compra", resp.Description)
	assert.Equal(t, "user-1", resp.CreatedBy)

	stock, err := newStockUseCase(store).CurrentStock(context.Background(), "p-1")
	require.NoError(t, err)
	assert.True(t, stock.Equal(dec("12.5")))
}

func TestRegisterMovement_SalidaPuedeDejarSaldoNegativo(t *testing.T) {
	uc, store := newMovementUseCase(t)

	_, err := uc.RegisterMovement(context.Background(), appinv.MovementInputDTO{
		ProductID: "p-1", Type: entity.MovementTypeExit, Quantity: dec("4"), Date: day("2024-03-01"),
	})
	require.NoError(t, err)

	stock, err := newStockUseCase(store).CurrentStock(context.Background(), "p-1")
	require.NoError(t, err)
	assert.True(t, stock.Equal(dec("-4")))
}

func TestRegisterMovement_Rechazos(t *testing.T) {
	uc, _ := newMovementUseCase(t)

	cases := []struct {
		name string
		in   dto.RegisterMovementRequest
		want error
	}{
		{"tipo desconocido", dto.RegisterMovementRequest{ProductID: "p-1", Type: "ajuste", Quantity: dec("1"), Date: "2024-03-01"}, domain.ErrInvalidMovement},
		{"cantidad cero", dto.RegisterMovementRequest{ProductID: "p-1", Type: entity.MovementTypeEntry, Quantity: dec("0"), Date: "2024-03-01"}, domain.ErrInvalidMovement},
		{"cantidad negativa", dto.RegisterMovementRequest{ProductID: "p-1", Type: entity.MovementTypeExit, Quantity: dec("-2"), Date: "2024-03-01"}, domain.ErrInvalidMovement},
		{"fecha mal formada", dto.RegisterMovementRequest{ProductID: "p-1", Type: entity.MovementTypeEntry, Quantity: dec("1"), Date: "01/03/2024"}, domain.ErrInvalidInput},
		{"producto inexistente", dto.RegisterMovementRequest{ProductID: "p-x", Type: entity.MovementTypeEntry, Quantity: dec("1"), Date: "2024-03-01"}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterMovementFromRequest(context.Background(), "user-1", tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestListMovements_FiltrosYOrden(t *testing.T) {
	uc, store := newMovementUseCase(t)
	seedProduct(t, store, "p-2", "A002", "0", true)
	seedMovement(t, store, "m-1", "p-1", entity.MovementTypeEntry, "10", "2024-01-01", base)
	seedMovement(t, store, "m-2", "p-1", entity.MovementTypeExit, "1", "2024-01-03", base)
	seedMovement(t, store, "m-3", "p-2", entity.MovementTypeEntry, "5", "2024-01-02", base)

	all, err := uc.ListMovements(context.Background(), repository.MovementFilter{})
	require.NoError(t, err)
	require.Equal(t, 3, all.Total)
	assert.Equal(t, []string{"m-2", "m-3", "m-1"}, []string{all.Items[0].ID, all.Items[1].ID, all.Items[2].ID})

	from, to := day("2024-01-01"), day("2024-01-02")
	filtered, err := uc.ListMovements(context.Background(), repository.MovementFilter{ProductID: "p-1", From: &from, To: &to})
	require.NoError(t, err)
	require.Equal(t, 1, filtered.Total)
	assert.Equal(t, "m-1", filtered.Items[0].ID)

	_, err = uc.ListMovements(context.Background(), repository.MovementFilter{From: &to, To: &from})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}
