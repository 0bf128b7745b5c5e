package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-kardex/internal/application/dto"
	"github.com/jhoicas/almacen-kardex/internal/domain"
	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
	"github.com/jhoicas/almacen-kardex/internal/domain/repository"
)

// RegisterMovementUseCase alta y consulta de movimientos. Los movimientos no se editan ni se borran.
type RegisterMovementUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{productRepo: productRepo, movementRepo: movementRepo}
}

// MovementInputDTO entrada para registrar un movimiento.
type MovementInputDTO struct {
	UserID      string
	ProductID   string
	Type        string
	Quantity    decimal.Decimal
	Description string
	Date        time.Time
}

// RegisterMovement valida y persiste el movimiento.
// Tipo fuera de {entrada, salida} o cantidad ≤ 0 → domain.ErrInvalidMovement.
// Producto inexistente → domain.ErrNotFound. No se valida stock suficiente: el saldo puede quedar negativo.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*dto.MovementResponse, error) {
	if !entity.ValidMovementType(input.Type) || !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidMovement
	}
	if input.ProductID == "" || input.Date.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("registrar movimiento: producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	mov := &entity.Movement{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		Type:        input.Type,
		Quantity:    input.Quantity,
		Description: strings.TrimSpace(input.Description),
		Date:        entity.DateOnly(input.Date),
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   input.UserID,
	}
	if err := uc.movementRepo.Create(ctx, mov); err != nil {
		return nil, fmt.Errorf("registrar movimiento: %w", err)
	}
	out := dto.FromMovement(mov)
	return &out, nil
}

// RegisterMovementFromRequest adapta el request HTTP (fecha en texto) al caso de uso.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	date, err := entity.ParseDate(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return uc.RegisterMovement(ctx, MovementInputDTO{
		UserID:      userID,
		ProductID:   in.ProductID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Description: in.Description,
		Date:        date,
	})
}

// ListMovements devuelve los movimientos filtrados, del más reciente al más antiguo.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) (*dto.MovementListResponse, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, domain.ErrInvalidRange
	}
	movs, err := uc.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	items := dto.FromMovements(movs)
	return &dto.MovementListResponse{Items: items, Total: len(items)}, nil
}
