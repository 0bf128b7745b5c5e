package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-kardex/internal/application/dto"
	"github.com/jhoicas/almacen-kardex/internal/domain"
	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
	"github.com/jhoicas/almacen-kardex/internal/domain/repository"
)

// UnitUseCase casos de uso para unidades de medida. No hay borrado: solo activar/desactivar.
type UnitUseCase struct {
	repo repository.UnitRepository
}

// NewUnitUseCase construye el caso de uso.
func NewUnitUseCase(repo repository.UnitRepository) *UnitUseCase {
	return &UnitUseCase{repo: repo}
}

// Create crea una unidad. La abreviatura es única.
func (uc *UnitUseCase) Create(ctx context.Context, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	name := strings.TrimSpace(in.Name)
	abbr := strings.TrimSpace(in.Abbreviation)
	if name == "" || abbr == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByAbbreviation(ctx, abbr)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	unit := &entity.Unit{
		ID:           uuid.New().String(),
		Name:         name,
		Abbreviation: abbr,
		Active:       in.Active == nil || *in.Active,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Create(ctx, unit); err != nil {
		return nil, err
	}
	out := dto.FromUnit(unit)
	return &out, nil
}

// List lista unidades ordenadas por nombre.
func (uc *UnitUseCase) List(ctx context.Context, activeOnly bool) ([]dto.UnitResponse, error) {
	list, err := uc.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		items = append(items, dto.FromUnit(u))
	}
	return items, nil
}

// Toggle invierte el estado activo de la unidad.
func (uc *UnitUseCase) Toggle(ctx context.Context, id string) (*dto.UnitResponse, error) {
	unit, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	unit.Active = !unit.Active
	if err := uc.repo.Update(ctx, unit); err != nil {
		return nil, err
	}
	out := dto.FromUnit(unit)
	return &out, nil
}
