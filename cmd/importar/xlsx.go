package main

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/almacen-kardex/internal/application/dto"
)

// parseXLSX lee la primera hoja del libro con el mismo encabezado que el CSV.
// Las celdas se leen sin formato para que las cantidades no traigan separadores de miles.
func parseXLSX(r io.Reader) ([]dto.ImportRowDTO, []string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("abrir xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("xlsx sin hojas")
	}
	records, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("leer hoja %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("leer encabezado: hoja %q vacía", sheets[0])
	}
	idx, err := columnIndex(records[0])
	if err != nil {
		return nil, nil, err
	}

	var rows []dto.ImportRowDTO
	var problems []string
	for i, rec := range records[1:] {
		row, problem := parseRecord(idx, rec, i+2)
		switch {
		case problem != "":
			problems = append(problems, problem)
		case row != nil:
			rows = append(rows, *row)
		}
	}
	return rows, problems, nil
}
