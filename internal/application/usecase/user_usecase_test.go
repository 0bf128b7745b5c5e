package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-kardex/internal/application/dto"
	"github.com/jhoicas/almacen-kardex/internal/application/usecase"
	"github.com/jhoicas/almacen-kardex/internal/domain"
	"github.com/jhoicas/almacen-kardex/internal/infrastructure/memory"
)

func TestUserUseCase_CreateHasheaPassword(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()

	u, err := uc.Create(ctx, dto.CreateUserRequest{Username: "consulta1", Password: "12345678", Role: "consulta"})
	require.NoError(t, err)
	assert.Equal(t, "consulta1", u.FullName, "sin nombre completo se usa el username")
	assert.True(t, u.Active)

	stored, err := store.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("12345678")))

	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "CONSULTA1", Password: "12345678", Role: "consulta"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserUseCase_CreateValidaciones(t *testing.T) {
	uc := usecase.NewUserUseCase(memory.NewStore().Users())

	cases := []dto.CreateUserRequest{
		{Username: "ab", Password: "12345678", Role: "admin"},
		{Username: "valido", Password: "corta", Role: "admin"},
		{Username: "valido", Password: "12345678", Role: "supervisor"},
	}
	for _, in := range cases {
		_, err := uc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
}

func TestUserUseCase_Toggle(t *testing.T) {
	uc := usecase.NewUserUseCase(memory.NewStore().Users())
	ctx := context.Background()
	u, err := uc.Create(ctx, dto.CreateUserRequest{Username: "operador1", Password: "12345678", Role: "operador"})
	require.NoError(t, err)

	toggled, err := uc.Toggle(ctx, "admin-1", u.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	_, err = uc.Toggle(ctx, u.ID, u.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Toggle(ctx, "admin-1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
