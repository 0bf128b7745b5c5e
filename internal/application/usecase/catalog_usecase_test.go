package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-kardex/internal/application/dto"
	"github.com/jhoicas/almacen-kardex/internal/application/usecase"
	"github.com/jhoicas/almacen-kardex/internal/domain"
	"github.com/jhoicas/almacen-kardex/internal/infrastructure/memory"
)

func TestUnitUseCase_CreateYAbreviaturaUnica(t *testing.T) {
	uc := usecase.NewUnitUseCase(memory.NewStore().Units())
	ctx := context.Background()

	u, err := uc.Create(ctx, dto.CreateUnitRequest{Name: " Metro ", Abbreviation: "m"})
	require.NoError(t, err)
	assert.Equal(t, "Metro", u.Name)
	assert.True(t, u.Active, "sin Active explícito la unidad queda activa")

	_, err = uc.Create(ctx, dto.CreateUnitRequest{Name: "Metro lineal", Abbreviation: "m"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateUnitRequest{Name: "", Abbreviation: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUnitUseCase_ListOrdenadoYToggle(t *testing.T) {
	uc := usecase.NewUnitUseCase(memory.NewStore().Units())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateUnitRequest{Name: "Unidad", Abbreviation: "und"})
	require.NoError(t, err)
	kg, err := uc.Create(ctx, dto.CreateUnitRequest{Name: "Kilogramo", Abbreviation: "kg"})
	require.NoError(t, err)

	all, err := uc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Kilogramo", all[0].Name)

	toggled, err := uc.Toggle(ctx, kg.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	active, err := uc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Unidad", active[0].Name)

	_, err = uc.Toggle(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGroupUseCase_NombreUnicoYToggle(t *testing.T) {
	uc := usecase.NewGroupUseCase(memory.NewStore().Groups())
	ctx := context.Background()

	inactive := false
	g, err := uc.Create(ctx, dto.CreateGroupRequest{Name: "Eléctricos", Description: "Cables", Active: &inactive})
	require.NoError(t, err)
	assert.False(t, g.Active)

	_, err = uc.Create(ctx, dto.CreateGroupRequest{Name: "Eléctricos"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	toggled, err := uc.Toggle(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Active)

	list, err := uc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
