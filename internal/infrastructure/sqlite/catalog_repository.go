package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/almacen-kardex/internal/domain"
	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
	"github.com/jhoicas/almacen-kardex/internal/domain/repository"
)

var (
	_ repository.UnitRepository  = (*UnitRepo)(nil)
	_ repository.GroupRepository = (*GroupRepo)(nil)
)

// ─── Unidades ────────────────────────────────────────────────────────────────

// UnitRepo implementación de UnitRepository sobre SQLite.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador.
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

func (r *UnitRepo) Create(ctx context.Context, u *entity.Unit) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO units (id, name, abbreviation, active, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Abbreviation, u.Active, toMillis(u.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) GetByID(ctx context.Context, id string) (*entity.Unit, error) {
	return r.getOne(ctx, `SELECT id, name, abbreviation, active, created_at FROM units WHERE id = ?`, id)
}

func (r *UnitRepo) GetByAbbreviation(ctx context.Context, abbreviation string) (*entity.Unit, error) {
	return r.getOne(ctx, `SELECT id, name, abbreviation, active, created_at FROM units WHERE abbreviation = ?`, abbreviation)
}

func (r *UnitRepo) getOne(ctx context.Context, query, arg string) (*entity.Unit, error) {
	u, err := scanUnit(r.q.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return u, nil
}

func (r *UnitRepo) Update(ctx context.Context, u *entity.Unit) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE units SET name = ?, abbreviation = ?, active = ? WHERE id = ?`,
		u.Name, u.Abbreviation, u.Active, u.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update unit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UnitRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Unit, error) {
	query := `SELECT id, name, abbreviation, active, created_at FROM units`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	rows, err := r.q.QueryContext(ctx, query+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Unit, 0)
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func scanUnit(row rowScanner) (*entity.Unit, error) {
	var (
		u         entity.Unit
		createdAt int64
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Abbreviation, &u.Active, &createdAt); err != nil {
		return nil, err
	}
	u.CreatedAt = fromMillis(createdAt)
	return &u, nil
}

// ─── Grupos ──────────────────────────────────────────────────────────────────

// GroupRepo implementación de GroupRepository sobre SQLite.
type GroupRepo struct {
	q Querier
}

// NewGroupRepository construye el adaptador.
func NewGroupRepository(q Querier) *GroupRepo {
	return &GroupRepo{q: q}
}

func (r *GroupRepo) Create(ctx context.Context, g *entity.Group) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO product_groups (id, name, description, active, created_at) VALUES (?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.Description, g.Active, toMillis(g.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

func (r *GroupRepo) GetByID(ctx context.Context, id string) (*entity.Group, error) {
	return r.getOne(ctx, `SELECT id, name, description, active, created_at FROM product_groups WHERE id = ?`, id)
}

func (r *GroupRepo) GetByName(ctx context.Context, name string) (*entity.Group, error) {
	return r.getOne(ctx, `SELECT id, name, description, active, created_at FROM product_groups WHERE name = ?`, name)
}

func (r *GroupRepo) getOne(ctx context.Context, query, arg string) (*entity.Group, error) {
	g, err := scanGroup(r.q.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return g, nil
}

func (r *GroupRepo) Update(ctx context.Context, g *entity.Group) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE product_groups SET name = ?, description = ?, active = ? WHERE id = ?`,
		g.Name, g.Description, g.Active, g.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update group: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GroupRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Group, error) {
	query := `SELECT id, name, description, active, created_at FROM product_groups`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	rows, err := r.q.QueryContext(ctx, query+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Group, 0)
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

func scanGroup(row rowScanner) (*entity.Group, error) {
	var (
		g         entity.Group
		createdAt int64
	)
	if err := row.Scan(&g.ID, &g.Name, &g.Description, &g.Active, &createdAt); err != nil {
		return nil, err
	}
	g.CreatedAt = fromMillis(createdAt)
	return &g, nil
}
