package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-kardex/internal/application/dto"
	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
)

// ImportOpeningBalanceUseCase carga el inventario inicial: crea productos y, por cada cantidad > 0,
// un único movimiento de entrada fechado el día de la importación.
type ImportOpeningBalanceUseCase struct {
	txRunner TxRunner
}

// NewImportOpeningBalanceUseCase construye el caso de uso.
func NewImportOpeningBalanceUseCase(txRunner TxRunner) *ImportOpeningBalanceUseCase {
	return &ImportOpeningBalanceUseCase{txRunner: txRunner}
}

// Import procesa las filas en una sola transacción. Las filas inválidas se omiten y se reportan
// en Errors; un error de BD revierte toda la importación.
func (uc *ImportOpeningBalanceUseCase) Import(ctx context.Context, userID string, rows []dto.ImportRowDTO) (*dto.ImportResultDTO, error) {
	result := &dto.ImportResultDTO{Errors: []string{}}
	now := time.Now().UTC()

	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		units, err := repos.Units.List(ctx, true)
		if err != nil {
			return fmt.Errorf("importar: unidades: %w", err)
		}
		groups, err := repos.Groups.List(ctx, true)
		if err != nil {
			return fmt.Errorf("importar: grupos: %w", err)
		}
		// Unidad por abreviatura o nombre; grupo por nombre. Sin distinguir mayúsculas.
		unitByKey := make(map[string]string, len(units)*2)
		for _, u := range units {
			unitByKey[strings.ToLower(u.Abbreviation)] = u.ID
			unitByKey[strings.ToLower(u.Name)] = u.ID
		}
		groupByKey := make(map[string]string, len(groups))
		for _, g := range groups {
			groupByKey[strings.ToLower(g.Name)] = g.ID
		}

		for i, row := range rows {
			code := strings.TrimSpace(row.Code)
			name := strings.TrimSpace(row.Name)
			unitKey := strings.TrimSpace(row.Unit)
			groupKey := strings.TrimSpace(row.Group)

			if code == "" {
				result.Errors = append(result.Errors, fmt.Sprintf("Fila %d: sin código válido", i+1))
				continue
			}
			if name == "" {
				result.Errors = append(result.Errors, fmt.Sprintf("Producto %s: sin nombre válido", code))
				continue
			}
			unitID, ok := unitByKey[strings.ToLower(unitKey)]
			if !ok {
				result.Errors = append(result.Errors, fmt.Sprintf("Producto %s: unidad '%s' no encontrada", code, unitKey))
				continue
			}
			groupID, ok := groupByKey[strings.ToLower(groupKey)]
			if !ok {
				result.Errors = append(result.Errors, fmt.Sprintf("Producto %s: grupo '%s' no encontrado", code, groupKey))
				continue
			}
			existing, err := repos.Products.GetByCode(ctx, code)
			if err != nil {
				return fmt.Errorf("importar: producto %s: %w", code, err)
			}
			if existing != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Producto %s: ya existe en la base de datos", code))
				continue
			}

			product := &entity.Product{
				ID:        uuid.New().String(),
				Code:      code,
				Name:      name,
				UnitID:    unitID,
				GroupID:   groupID,
				MinStock:  decimal.Zero,
				Active:    true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := repos.Products.Create(ctx, product); err != nil {
				return fmt.Errorf("importar: crear producto %s: %w", code, err)
			}
			result.ProductsCreated++

			if row.InitialQuantity.GreaterThan(decimal.Zero) {
				mov := &entity.Movement{
					ID:          uuid.New().String(),
					ProductID:   product.ID,
					Type:        entity.MovementTypeEntry,
					Quantity:    row.InitialQuantity,
					Description: entity.OpeningBalanceDescription,
					Date:        entity.DateOnly(now),
					CreatedAt:   now,
					CreatedBy:   userID,
				}
				if err := repos.Movements.Create(ctx, mov); err != nil {
					return fmt.Errorf("importar: saldo inicial %s: %w", code, err)
				}
				result.MovementsCreated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
