package storage_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
	"github.com/jhoicas/almacen-kardex/internal/infrastructure/storage"
	"github.com/jhoicas/almacen-kardex/pkg/config"
	"github.com/jhoicas/almacen-kardex/pkg/logger"
)

func TestOpen_SQLiteYMemoria(t *testing.T) {
	cases := []config.DBConfig{
		{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "kardex.db")},
		{Driver: config.DriverMemory},
	}
	for _, cfg := range cases {
		t.Run(cfg.Driver, func(t *testing.T) {
			repos, err := storage.Open(context.Background(), cfg, logger.Nop())
			require.NoError(t, err)
			defer repos.Close()
			assert.Equal(t, cfg.Driver, repos.Driver)

			ctx := context.Background()
			require.NoError(t, repos.Units.Create(ctx, &entity.Unit{ID: "u-1", Name: "Pieza", Abbreviation: "pza", Active: true, CreatedAt: time.Now()}))
			got, err := repos.Units.GetByAbbreviation(ctx, "pza")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "Pieza", got.Name)
		})
	}
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := storage.Open(context.Background(), config.DBConfig{Driver: "mysql"}, logger.Nop())
	assert.Error(t, err)
}
