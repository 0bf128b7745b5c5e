package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/almacen-kardex/internal/application/inventory"
	"github.com/jhoicas/almacen-kardex/internal/domain"
	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
	"github.com/jhoicas/almacen-kardex/internal/domain/repository"
	"github.com/jhoicas/almacen-kardex/internal/infrastructure/sqlite"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "kardex.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

var ts = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

func seed(t *testing.T, db *sql.DB) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, sqlite.NewUnitRepository(db).Create(ctx, &entity.Unit{ID: "u-1", Name: "Unidad", Abbreviation: "und", Active: true, CreatedAt: ts}))
	require.NoError(t, sqlite.NewGroupRepository(db).Create(ctx, &entity.Group{ID: "g-1", Name: "Ferretería", Active: true, CreatedAt: ts}))
	require.NoError(t, sqlite.NewProductRepository(db).Create(ctx, &entity.Product{
		ID: "p-1", Code: "A001", Name: "Tornillo", UnitID: "u-1", GroupID: "g-1",
		MinStock: decimal.RequireFromString("2.5"), Active: true, CreatedAt: ts, UpdatedAt: ts,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestOpen_MigracionesIdempotentes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kardex.db")
	db, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = sqlite.Open(path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpen_RutaVacia(t *testing.T) {
	_, err := sqlite.Open("  ")
	assert.Error(t, err)
}

func TestProductRepo_RoundTripYCodigoUnico(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)
	repo := sqlite.NewProductRepository(db)
	ctx := context.Background()

	p, err := repo.GetByCode(ctx, "A001")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "p-1", p.ID)
	assert.True(t, p.MinStock.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, p.Active)
	assert.Equal(t, ts, p.CreatedAt)

	err = repo.Create(ctx, &entity.Product{ID: "p-2", Code: "A001", Name: "Otro", UnitID: "u-1", GroupID: "g-1", CreatedAt: ts, UpdatedAt: ts})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	err = repo.Create(ctx, &entity.Product{ID: "p-3", Code: "B001", Name: "Sin unidad", UnitID: "u-x", GroupID: "g-1", CreatedAt: ts, UpdatedAt: ts})
	assert.ErrorIs(t, err, domain.ErrInactiveReference)

	missing, err := repo.GetByID(ctx, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)

	p.Active = false
	p.UpdatedAt = ts.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, p))
	active := true
	list, err := repo.List(ctx, repository.ProductFilter{Active: &active})
	require.NoError(t, err)
	assert.Empty(t, list)
	list, err = repo.List(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.ErrorIs(t, repo.Update(ctx, &entity.Product{ID: "no-existe", Code: "Z", UnitID: "u-1", GroupID: "g-1"}), domain.ErrNotFound)
}

func TestMovementRepo_OrdenYFiltros(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)
	repo := sqlite.NewMovementRepository(db)
	ctx := context.Background()

	mk := func(id, typ, qty, date string, created time.Time) {
		d, err := entity.ParseDate(date)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, &entity.Movement{
			ID: id, ProductID: "p-1", Type: typ, Quantity: decimal.RequireFromString(qty), Date: d, CreatedAt: created,
		}))
	}
	mk("m-1", entity.MovementTypeEntry, "100", "2024-01-01", ts)
	mk("m-2", entity.MovementTypeExit, "30", "2024-01-05", ts)
	mk("m-3", entity.MovementTypeEntry, "0.75", "2024-01-05", ts.Add(time.Minute))

	all, err := repo.List(ctx, repository.MovementFilter{ProductID: "p-1"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"m-3", "m-2", "m-1"}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.True(t, all[0].Quantity.Equal(decimal.RequireFromString("0.75")))
	assert.Empty(t, all[0].CreatedBy)

	from, _ := entity.ParseDate("2024-01-02")
	ranged, err := repo.List(ctx, repository.MovementFilter{From: &from, Limit: 1})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "m-3", ranged[0].ID)

	err = repo.Create(ctx, &entity.Movement{ID: "m-x", ProductID: "p-x", Type: entity.MovementTypeEntry, Quantity: decimal.NewFromInt(1), Date: from, CreatedAt: ts})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_UsernameSinMayusculasYUltimoAcceso(t *testing.T) {
	db := openTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.User{
		ID: "usr-1", Username: "Admin", PasswordHash: "hash", Role: entity.RoleAdmin, Active: true, CreatedAt: ts, UpdatedAt: ts,
	}))
	err := repo.Create(ctx, &entity.User{ID: "usr-2", Username: "admin", PasswordHash: "hash", Role: entity.RoleConsulta, CreatedAt: ts, UpdatedAt: ts})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	u, err := repo.GetByUsername(ctx, "ADMIN")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.Nil(t, u.LastAccess)

	at := ts.Add(2 * time.Hour)
	require.NoError(t, repo.TouchLastAccess(ctx, "usr-1", at))
	u, err = repo.GetByID(ctx, "usr-1")
	require.NoError(t, err)
	require.NotNil(t, u.LastAccess)
	assert.Equal(t, at, *u.LastAccess)

	assert.ErrorIs(t, repo.TouchLastAccess(ctx, "usr-x", at), domain.ErrUserNotFound)
}

func TestTxRunner_RollbackSiFalla(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)
	runner := sqlite.NewTxRunner(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := runner.Run(ctx, func(repos appinv.Repos) error {
		d, _ := entity.ParseDate("2024-02-01")
		if err := repos.Movements.Create(ctx, &entity.Movement{
			ID: "m-tx", ProductID: "p-1", Type: entity.MovementTypeEntry, Quantity: decimal.NewFromInt(5), Date: d, CreatedAt: ts,
		}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	movs, err := sqlite.NewMovementRepository(db).List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs)

	require.NoError(t, runner.Run(ctx, func(repos appinv.Repos) error {
		d, _ := entity.ParseDate("2024-02-01")
		return repos.Movements.Create(ctx, &entity.Movement{
			ID: "m-ok", ProductID: "p-1", Type: entity.MovementTypeEntry, Quantity: decimal.NewFromInt(5), Date: d, CreatedAt: ts, CreatedBy: "usr-1",
		})
	}))
	movs, err = sqlite.NewMovementRepository(db).List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "usr-1", movs[0].CreatedBy)
}
