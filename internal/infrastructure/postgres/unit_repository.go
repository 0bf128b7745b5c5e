package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-kardex/internal/domain"
	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
	"github.com/jhoicas/almacen-kardex/internal/domain/repository"
)

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo implementación del puerto UnitRepository sobre PostgreSQL.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador. Pasar pool o tx.
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

// Create persiste una unidad.
func (r *UnitRepo) Create(ctx context.Context, u *entity.Unit) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO units (id, name, abbreviation, active, created_at) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Name, u.Abbreviation, u.Active, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad por ID.
func (r *UnitRepo) GetByID(ctx context.Context, id string) (*entity.Unit, error) {
	return r.getOne(ctx, `SELECT id, name, abbreviation, active, created_at FROM units WHERE id::text = $1`, id)
}

// GetByAbbreviation obtiene una unidad por abreviatura exacta.
func (r *UnitRepo) GetByAbbreviation(ctx context.Context, abbreviation string) (*entity.Unit, error) {
	return r.getOne(ctx, `SELECT id, name, abbreviation, active, created_at FROM units WHERE abbreviation = $1`, abbreviation)
}

func (r *UnitRepo) getOne(ctx context.Context, query, arg string) (*entity.Unit, error) {
	var u entity.Unit
	err := r.q.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Abbreviation, &u.Active, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

// Update actualiza nombre, abreviatura y estado.
func (r *UnitRepo) Update(ctx context.Context, u *entity.Unit) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE units SET name = $2, abbreviation = $3, active = $4 WHERE id = $1`,
		u.ID, u.Name, u.Abbreviation, u.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update unit: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista unidades por nombre.
func (r *UnitRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Unit, error) {
	query := `SELECT id, name, abbreviation, active, created_at FROM units`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Unit, 0)
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.ID, &u.Name, &u.Abbreviation, &u.Active, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
