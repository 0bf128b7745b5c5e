// Package storage arma los repositorios según el driver configurado (PostgreSQL, SQLite o memoria).
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-kardex/internal/application/inventory"
	"github.com/jhoicas/almacen-kardex/internal/domain/repository"
	"github.com/jhoicas/almacen-kardex/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-kardex/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-kardex/internal/infrastructure/sqlite"
	"github.com/jhoicas/almacen-kardex/pkg/config"
	"github.com/jhoicas/almacen-kardex/pkg/logger"
)

// Repositories repositorios listos para inyectar en los casos de uso.
type Repositories struct {
	Driver    string
	Products  repository.ProductRepository
	Units     repository.UnitRepository
	Groups    repository.GroupRepository
	Movements repository.MovementRepository
	Users     repository.UserRepository
	Tx        inventory.TxRunner

	close func()
}

// Close libera la conexión subyacente.
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open conecta al almacenamiento de cfg.Driver y aplica las migraciones pendientes.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Repositories, error) {
	switch cfg.Driver {
	case config.DriverPostgres, "":
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones PostgreSQL: %w", err)
		}
		for _, name := range applied {
			log.Info().Str("migration", name).Msg("migración aplicada")
		}
		return &Repositories{
			Driver:    config.DriverPostgres,
			Products:  postgres.NewProductRepository(pool),
			Units:     postgres.NewUnitRepository(pool),
			Groups:    postgres.NewGroupRepository(pool),
			Movements: postgres.NewMovementRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			Tx:        postgres.NewTxRunner(pool),
			close:     pool.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("conexión a SQLite: %w", err)
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("base SQLite abierta")
		return &Repositories{
			Driver:    config.DriverSQLite,
			Products:  sqlite.NewProductRepository(db),
			Units:     sqlite.NewUnitRepository(db),
			Groups:    sqlite.NewGroupRepository(db),
			Movements: sqlite.NewMovementRepository(db),
			Users:     sqlite.NewUserRepository(db),
			Tx:        sqlite.NewTxRunner(db),
			close: func() {
				if err := db.Close(); err != nil {
					log.Error().Err(err).Msg("cerrar SQLite")
				}
			},
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &Repositories{
			Driver:    config.DriverMemory,
			Products:  store.Products(),
			Units:     store.Units(),
			Groups:    store.Groups(),
			Movements: store.Movements(),
			Users:     store.Users(),
			Tx:        memory.NewTxRunner(store),
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido %q", cfg.Driver)
}
