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

// GroupUseCase casos de uso para grupos de productos.
type GroupUseCase struct {
	repo repository.GroupRepository
}

// NewGroupUseCase construye el caso de uso.
func NewGroupUseCase(repo repository.GroupRepository) *GroupUseCase {
	return &GroupUseCase{repo: repo}
}

// Create crea un grupo. El nombre es único.
func (uc *GroupUseCase) Create(ctx context.Context, in dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	group := &entity.Group{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Active:      in.Active == nil || *in.Active,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, group); err != nil {
		return nil, err
	}
	out := dto.FromGroup(group)
	return &out, nil
}

// List lista grupos ordenados por nombre.
func (uc *GroupUseCase) List(ctx context.Context, activeOnly bool) ([]dto.GroupResponse, error) {
	list, err := uc.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	items := make([]dto.GroupResponse, 0, len(list))
	for _, g := range list {
		items = append(items, dto.FromGroup(g))
	}
	return items, nil
}

// Toggle invierte el estado activo del grupo.
func (uc *GroupUseCase) Toggle(ctx context.Context, id string) (*dto.GroupResponse, error) {
	group, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domain.ErrNotFound
	}
	group.Active = !group.Active
	if err := uc.repo.Update(ctx, group); err != nil {
		return nil, err
	}
	out := dto.FromGroup(group)
	return &out, nil
}
