package main

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseCSV_ComaYAliases(t *testing.T) {
	in := "Código,Nombre,Unidad,Grupo,Cantidad\nA001,Tornillo,pza,Ferretería,10\nA002,Tuerca,pza,Ferretería,\n\n"

	rows, problems, err := parseCSV(strings.NewReader(in), false)
	require.NoError(t, err)
	assert.Empty(t, problems)
	require.Len(t, rows, 2)
	assert.Equal(t, "A001", rows[0].Code)
	assert.Equal(t, "Ferretería", rows[0].Group)
	assert.True(t, rows[0].InitialQuantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, rows[1].InitialQuantity.IsZero(), "cantidad vacía = 0")
}

func TestParseCSV_PuntoYComaLatin1(t *testing.T) {
	utf8 := "codigo;nombre;unidad;grupo;cantidad\nB001;Cañería;m;Plomería;2,5\nB002;Codo;pza;Plomería;abc\n"
	latin1, err := charmap.ISO8859_1.NewEncoder().String(utf8)
	require.NoError(t, err)

	rows, problems, err := parseCSV(strings.NewReader(latin1), true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Cañería", rows[0].Name)
	assert.True(t, rows[0].InitialQuantity.Equal(decimal.RequireFromString("2.5")))
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "Línea 3")
}

func TestParseCSV_EncabezadoIncompleto(t *testing.T) {
	_, _, err := parseCSV(strings.NewReader("codigo,nombre\nA001,Tornillo\n"), false)
	assert.Error(t, err)
}
