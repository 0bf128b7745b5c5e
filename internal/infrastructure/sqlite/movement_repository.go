package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jhoicas/almacen-kardex/internal/domain"
	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
	"github.com/jhoicas/almacen-kardex/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre SQLite. Solo INSERT y SELECT.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	var createdBy sql.NullString
	if m.CreatedBy != "" {
		createdBy = sql.NullString{String: m.CreatedBy, Valid: true}
	}
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO movements (id, product_id, type, quantity, description, movement_date, created_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ProductID, m.Type, m.Quantity, m.Description, m.Date.Format(entity.DateLayout), toMillis(m.CreatedAt), createdBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List más reciente primero por (fecha, created_at, id). Las fechas TEXT ISO se comparan bien como texto.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	var (
		conds []string
		args  []any
	)
	if filter.ProductID != "" {
		conds = append(conds, "product_id = ?")
		args = append(args, filter.ProductID)
	}
	if filter.From != nil {
		conds = append(conds, "movement_date >= ?")
		args = append(args, filter.From.Format(entity.DateLayout))
	}
	if filter.To != nil {
		conds = append(conds, "movement_date <= ?")
		args = append(args, filter.To.Format(entity.DateLayout))
	}
	query := `SELECT id, product_id, type, quantity, description, movement_date, created_at, created_by FROM movements`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY movement_date DESC, created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Movement, 0)
	for rows.Next() {
		var (
			m         entity.Movement
			date      string
			createdAt int64
			createdBy sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Description, &date, &createdAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if m.Date, err = entity.ParseDate(date); err != nil {
			return nil, fmt.Errorf("movement %s: fecha %q: %w", m.ID, date, err)
		}
		m.CreatedAt = fromMillis(createdAt)
		m.CreatedBy = createdBy.String
		list = append(list, &m)
	}
	return list, rows.Err()
}
