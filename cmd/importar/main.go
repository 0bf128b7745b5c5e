// importar carga el inventario inicial desde un libro de Excel (.xlsx, primera hoja) o un CSV:
// crea los productos y un movimiento de entrada con la existencia de cada uno, todo en una
// sola transacción.
//
// Uso: go run ./cmd/importar [-latin1] inventario.xlsx|inventario.csv
// Columnas: Codigo, Nombre, Unidad, Grupo, Cantidad Inicial (la unidad acepta abreviatura o nombre).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/almacen-kardex/internal/application/dto"
	"github.com/jhoicas/almacen-kardex/internal/application/inventory"
	"github.com/jhoicas/almacen-kardex/internal/infrastructure/storage"
	"github.com/jhoicas/almacen-kardex/pkg/config"
	"github.com/jhoicas/almacen-kardex/pkg/logger"
)

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1 (exportado desde Excel)")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: importar [-latin1] archivo.xlsx|archivo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir archivo")
	}
	defer f.Close()

	rows, problems, err := parseFile(flag.Arg(0), f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Str("archivo", flag.Arg(0)).Msg("leer archivo")
	}

	ctx := context.Background()
	repos, err := storage.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer repos.Close()

	result, err := inventory.NewImportOpeningBalanceUseCase(repos.Tx).Import(ctx, "", rows)
	if err != nil {
		log.Fatal().Err(err).Msg("importación revertida")
	}

	for _, p := range append(problems, result.Errors...) {
		fmt.Println("  -", p)
	}
	log.Info().
		Int("productos", result.ProductsCreated).
		Int("movimientos", result.MovementsCreated).
		Int("errores", len(problems)+len(result.Errors)).
		Msg("importación terminada")
}

// parseFile elige el lector por extensión; cualquier otra se trata como CSV.
func parseFile(name string, r io.Reader, latin1 bool) ([]dto.ImportRowDTO, []string, error) {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return parseXLSX(r)
	}
	return parseCSV(r, latin1)
}
