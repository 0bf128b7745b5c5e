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

var _ repository.GroupRepository = (*GroupRepo)(nil)

// GroupRepo implementación del puerto GroupRepository sobre PostgreSQL (tabla product_groups).
type GroupRepo struct {
	q Querier
}

// NewGroupRepository construye el adaptador. Pasar pool o tx.
func NewGroupRepository(q Querier) *GroupRepo {
	return &GroupRepo{q: q}
}

// Create persiste un grupo.
func (r *GroupRepo) Create(ctx context.Context, g *entity.Group) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO product_groups (id, name, description, active, created_at) VALUES ($1, $2, $3, $4, $5)`,
		g.ID, g.Name, g.Description, g.Active, g.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

// GetByID obtiene un grupo por ID.
func (r *GroupRepo) GetByID(ctx context.Context, id string) (*entity.Group, error) {
	return r.getOne(ctx, `SELECT id, name, description, active, created_at FROM product_groups WHERE id::text = $1`, id)
}

// GetByName obtiene un grupo por nombre exacto.
func (r *GroupRepo) GetByName(ctx context.Context, name string) (*entity.Group, error) {
	return r.getOne(ctx, `SELECT id, name, description, active, created_at FROM product_groups WHERE name = $1`, name)
}

func (r *GroupRepo) getOne(ctx context.Context, query, arg string) (*entity.Group, error) {
	var g entity.Group
	err := r.q.QueryRow(ctx, query, arg).Scan(&g.ID, &g.Name, &g.Description, &g.Active, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return &g, nil
}

// Update actualiza nombre, descripción y estado.
func (r *GroupRepo) Update(ctx context.Context, g *entity.Group) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE product_groups SET name = $2, description = $3, active = $4 WHERE id = $1`,
		g.ID, g.Name, g.Description, g.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update group: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista grupos por nombre.
func (r *GroupRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Group, error) {
	query := `SELECT id, name, description, active, created_at FROM product_groups`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Group, 0)
	for rows.Next() {
		var g entity.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.Active, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}
