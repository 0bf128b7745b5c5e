package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-kardex/internal/application/dto"
	"github.com/jhoicas/almacen-kardex/internal/domain"
	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
	"github.com/jhoicas/almacen-kardex/internal/domain/inventory"
	"github.com/jhoicas/almacen-kardex/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock no se edita: se deriva de los movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	unitRepo     repository.UnitRepository
	groupRepo    repository.GroupRepository
	movementRepo repository.MovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	unitRepo repository.UnitRepository,
	groupRepo repository.GroupRepository,
	movementRepo repository.MovementRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, unitRepo: unitRepo, groupRepo: groupRepo, movementRepo: movementRepo}
}

// Create crea un producto activo. Código único; unidad y grupo deben existir y estar activos.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.checkReferences(ctx, in.UnitID, in.GroupID); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      name,
		UnitID:    in.UnitID,
		GroupID:   in.GroupID,
		MinStock:  entity.NormalizeMinStock(in.MinStock),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// GetByID obtiene un producto con su stock actual.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductStockResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	movs, err := uc.movementRepo.List(ctx, repository.MovementFilter{ProductID: id})
	if err != nil {
		return nil, err
	}
	return &dto.ProductStockResponse{
		ProductResponse: dto.FromProduct(product),
		CurrentStock:    inventory.CurrentStock(movs),
	}, nil
}

// Update reemplaza los datos editables del producto. Mismas reglas que Create; el código puede
// cambiar mientras no choque con otro producto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	if code != product.Code {
		other, err := uc.repo.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != product.ID {
			return nil, domain.ErrDuplicate
		}
	}
	if err := uc.checkReferences(ctx, in.UnitID, in.GroupID); err != nil {
		return nil, err
	}
	product.Code = code
	product.Name = name
	product.UnitID = in.UnitID
	product.GroupID = in.GroupID
	product.MinStock = entity.NormalizeMinStock(in.MinStock)
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// Toggle invierte el estado activo del producto. Sus movimientos se conservan.
func (uc *ProductUseCase) Toggle(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	product.Active = !product.Active
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// List lista productos con su stock actual (un solo barrido de movimientos).
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	movs, err := uc.movementRepo.List(ctx, repository.MovementFilter{})
	if err != nil {
		return nil, err
	}
	byProduct := make(map[string][]*entity.Movement, len(list))
	for _, m := range movs {
		byProduct[m.ProductID] = append(byProduct[m.ProductID], m)
	}
	items := make([]dto.ProductStockResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ProductStockResponse{
			ProductResponse: dto.FromProduct(p),
			CurrentStock:    inventory.CurrentStock(byProduct[p.ID]),
		})
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// checkReferences devuelve domain.ErrInactiveReference si la unidad o el grupo no existen o están inactivos.
func (uc *ProductUseCase) checkReferences(ctx context.Context, unitID, groupID string) error {
	unit, err := uc.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return err
	}
	if unit == nil || !unit.Active {
		return domain.ErrInactiveReference
	}
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil || !group.Active {
		return domain.ErrInactiveReference
	}
	return nil
}
