package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/almacen-kardex/internal/application/dto"
)

// columnAliases nombres de encabezado aceptados por columna (sin distinguir mayúsculas).
var columnAliases = map[string][]string{
	"code":     {"codigo", "código", "code"},
	"name":     {"nombre", "name", "descripcion", "descripción"},
	"unit":     {"unidad", "unit"},
	"group":    {"grupo", "group"},
	"quantity": {"cantidad inicial", "cantidad_inicial", "cantidad", "existencia", "initial_quantity", "quantity"},
}

// parseCSV lee filas de inventario inicial. La primera línea es el encabezado; se acepta
// coma o punto y coma como separador. Una cantidad ilegible descarta la fila y se informa.
func parseCSV(r io.Reader, latin1 bool) ([]dto.ImportRowDTO, []string, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("leer csv: %w", err)
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = detectSeparator(text)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("leer encabezado: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, nil, err
	}

	var rows []dto.ImportRowDTO
	var problems []string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("leer csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		row, problem := parseRecord(idx, rec, line)
		switch {
		case problem != "":
			problems = append(problems, problem)
		case row != nil:
			rows = append(rows, *row)
		}
	}
	return rows, problems, nil
}

// parseRecord arma la fila de importación de un registro. Un registro en blanco devuelve (nil, "").
func parseRecord(idx map[string]int, rec []string, line int) (*dto.ImportRowDTO, string) {
	field := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	if strings.TrimSpace(strings.Join(rec, "")) == "" {
		return nil, ""
	}
	qty, err := parseQuantity(field("quantity"))
	if err != nil {
		return nil, fmt.Sprintf("Línea %d: cantidad inválida '%s'", line, field("quantity"))
	}
	return &dto.ImportRowDTO{
		Code:            field("code"),
		Name:            field("name"),
		Unit:            field("unit"),
		Group:           field("group"),
		InitialQuantity: qty,
	}, ""
}

func detectSeparator(text string) rune {
	first, _, _ := strings.Cut(text, "\n")
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(columnAliases))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for col, aliases := range columnAliases {
			for _, a := range aliases {
				if h == a {
					idx[col] = i
				}
			}
		}
	}
	for _, required := range []string{"code", "name", "unit", "group"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("encabezado sin columna %q", columnAliases[required][0])
		}
	}
	return idx, nil
}

// parseQuantity acepta "12", "12.5" y "12,5". Vacío = 0.
func parseQuantity(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}
