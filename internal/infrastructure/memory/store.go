// Package memory implementa los puertos de persistencia en memoria. Se usa en tests de casos de uso
// y handlers, y como driver volátil; el TxRunner revierte las escrituras de la función si falla.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/almacen-kardex/internal/application/inventory"
	"github.com/jhoicas/almacen-kardex/internal/domain"
	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
	"github.com/jhoicas/almacen-kardex/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.UnitRepository     = (*UnitRepo)(nil)
	_ repository.GroupRepository    = (*GroupRepo)(nil)
	_ repository.MovementRepository = (*MovementRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ inventory.TxRunner            = (*TxRunner)(nil)
)

// Store guarda copias de las entidades; nunca expone punteros internos.
type Store struct {
	mu        sync.RWMutex
	txMu      sync.Mutex
	products  map[string]entity.Product
	units     map[string]entity.Unit
	groups    map[string]entity.Group
	movements map[string]entity.Movement
	users     map[string]entity.User
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:  map[string]entity.Product{},
		units:     map[string]entity.Unit{},
		groups:    map[string]entity.Group{},
		movements: map[string]entity.Movement{},
		users:     map[string]entity.User{},
	}
}

func (s *Store) Products() *ProductRepo   { return &ProductRepo{s: s} }
func (s *Store) Units() *UnitRepo         { return &UnitRepo{s: s} }
func (s *Store) Groups() *GroupRepo       { return &GroupRepo{s: s} }
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }
func (s *Store) Users() *UserRepo         { return &UserRepo{s: s} }

// undoLog acciones inversas de las escrituras hechas dentro de una transacción.
// Se aplican en orden inverso con s.mu tomado.
type undoLog struct {
	ops []func()
}

func (u *undoLog) record(op func()) {
	if u != nil {
		u.ops = append(u.ops, op)
	}
}

func (s *Store) rollback(u *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(u.ops) - 1; i >= 0; i-- {
		u.ops[i]()
	}
}

// TxRunner serializa las transacciones y, si fn devuelve error, deshace solo lo que fn escribió.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos sobre el store.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	undo := &undoLog{}
	err := fn(inventory.Repos{
		Products:  &ProductRepo{s: r.s, undo: undo},
		Units:     &UnitRepo{s: r.s, undo: undo},
		Groups:    &GroupRepo{s: r.s, undo: undo},
		Movements: &MovementRepo{s: r.s, undo: undo},
	})
	if err != nil {
		r.s.rollback(undo)
		return err
	}
	return nil
}

// ─── Products ────────────────────────────────────────────────────────────────

type ProductRepo struct {
	s    *Store
	undo *undoLog // nil fuera de una transacción
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.products {
		if existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.products[p.ID] = *p
	id := p.ID
	r.undo.record(func() { delete(r.s.products, id) })
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.Code == code {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.s.products {
		if id != p.ID && existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	prev := r.s.products[p.ID]
	r.s.products[p.ID] = *p
	r.undo.record(func() { r.s.products[prev.ID] = prev })
	return nil
}

// List ordena por código.
func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if filter.Active != nil && p.Active != *filter.Active {
			continue
		}
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, nil
}

// ─── Units ───────────────────────────────────────────────────────────────────

type UnitRepo struct {
	s    *Store
	undo *undoLog // nil fuera de una transacción
}

func (r *UnitRepo) Create(_ context.Context, u *entity.Unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.units {
		if existing.Abbreviation == u.Abbreviation {
			return domain.ErrDuplicate
		}
	}
	r.s.units[u.ID] = *u
	id := u.ID
	r.undo.record(func() { delete(r.s.units, id) })
	return nil
}

func (r *UnitRepo) GetByID(_ context.Context, id string) (*entity.Unit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.units[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UnitRepo) GetByAbbreviation(_ context.Context, abbreviation string) (*entity.Unit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.units {
		if u.Abbreviation == abbreviation {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UnitRepo) Update(_ context.Context, u *entity.Unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.units[u.ID]; !ok {
		return domain.ErrNotFound
	}
	prev := r.s.units[u.ID]
	r.s.units[u.ID] = *u
	r.undo.record(func() { r.s.units[prev.ID] = prev })
	return nil
}

func (r *UnitRepo) List(_ context.Context, activeOnly bool) ([]*entity.Unit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Unit, 0, len(r.s.units))
	for _, u := range r.s.units {
		if activeOnly && !u.Active {
			continue
		}
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// ─── Groups ──────────────────────────────────────────────────────────────────

type GroupRepo struct {
	s    *Store
	undo *undoLog // nil fuera de una transacción
}

func (r *GroupRepo) Create(_ context.Context, g *entity.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.groups {
		if existing.Name == g.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.groups[g.ID] = *g
	id := g.ID
	r.undo.record(func() { delete(r.s.groups, id) })
	return nil
}

func (r *GroupRepo) GetByID(_ context.Context, id string) (*entity.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	g, ok := r.s.groups[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (r *GroupRepo) GetByName(_ context.Context, name string) (*entity.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, g := range r.s.groups {
		if g.Name == name {
			return &g, nil
		}
	}
	return nil, nil
}

func (r *GroupRepo) Update(_ context.Context, g *entity.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.groups[g.ID]; !ok {
		return domain.ErrNotFound
	}
	prev := r.s.groups[g.ID]
	r.s.groups[g.ID] = *g
	r.undo.record(func() { r.s.groups[prev.ID] = prev })
	return nil
}

func (r *GroupRepo) List(_ context.Context, activeOnly bool) ([]*entity.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Group, 0, len(r.s.groups))
	for _, g := range r.s.groups {
		if activeOnly && !g.Active {
			continue
		}
		list = append(list, &g)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// ─── Movements ───────────────────────────────────────────────────────────────

type MovementRepo struct {
	s    *Store
	undo *undoLog // nil fuera de una transacción
}

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[m.ProductID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.movements[m.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.movements[m.ID] = *m
	id := m.ID
	r.undo.record(func() { delete(r.s.movements, id) })
	return nil
}

// List más reciente primero por (fecha, created_at).
func (r *MovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Movement, 0)
	for _, m := range r.s.movements {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		day := entity.DateOnly(m.Date)
		if filter.From != nil && day.Before(entity.DateOnly(*filter.From)) {
			continue
		}
		if filter.To != nil && day.After(entity.DateOnly(*filter.To)) {
			continue
		}
		list = append(list, &m)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	if filter.Limit > 0 && len(list) > filter.Limit {
		list = list[:filter.Limit]
	}
	return list, nil
}

// ─── Users ───────────────────────────────────────────────────────────────────

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Username, u.Username) {
			return domain.ErrDuplicate
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Username, username) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })
	return list, nil
}

func (r *UserRepo) TouchLastAccess(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LastAccess = &at
	r.s.users[id] = u
	return nil
}
