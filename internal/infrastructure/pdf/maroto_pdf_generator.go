// Package pdf implementa los reportes imprimibles del almacén con Maroto v2.
//
// Layout del kardex (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Código + Nombre del producto │ Rango + Generado    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SALDOS: Saldo inicial │ Saldo final │ Stock mínimo          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Descripción | Entrada | Salida | Saldo│
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-kardex/internal/application/dto"
	"github.com/jhoicas/almacen-kardex/internal/application/inventory"
	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ inventory.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa inventory.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	appName string
}

// NewMarotoPDFGenerator construye el generador. appName aparece como autor del documento.
func NewMarotoPDFGenerator(appName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{appName: appName}
}

func (g *MarotoPDFGenerator) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.appName, true).
		Build()
	return maroto.New(cfg)
}

// GenerateKardexPDF genera el kardex de un producto y devuelve sus bytes.
// Las líneas se imprimen en el mismo orden que la respuesta (más reciente primero).
func (g *MarotoPDFGenerator) GenerateKardexPDF(_ context.Context, k *dto.KardexResponse) ([]byte, error) {
	if k == nil {
		return nil, fmt.Errorf("pdf: kardex vacío")
	}
	m := g.newDocument("Kardex " + k.Product.Code)

	m.AddRows(kardexHeaderRow(k, time.Now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(balancesRow(k))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(kardexTableHeaderRow())
	if len(k.Entries) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos en el rango seleccionado.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	for _, r := range kardexDetailRows(k.Entries) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar kardex: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateLowStockPDF genera el reporte de productos en o por debajo del mínimo.
func (g *MarotoPDFGenerator) GenerateLowStockPDF(_ context.Context, items []dto.LowStockItemDTO) ([]byte, error) {
	m := g.newDocument("Productos con stock bajo")

	m.AddRows(row.New(14).Add(
		col.New(8).Add(text.New("PRODUCTOS CON STOCK BAJO", props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
			Size: 8, Align: align.Right, Color: colorGray, Top: 4,
		})),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	h := headerCell
	m.AddRows(row.New(8).Add(
		h("Código", 2, align.Left),
		h("Producto", 6, align.Left),
		h("Stock actual", 2, align.Right),
		h("Mínimo", 2, align.Right),
	))
	if len(items) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Ningún producto por debajo de su mínimo.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	for _, it := range items {
		m.AddRows(row.New(7).Add(
			col.New(2).Add(text.New(it.Product.Code, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(6).Add(text.New(it.Product.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatQuantity(it.CurrentStock), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorAlert,
			})),
			col.New(2).Add(text.New(formatQuantity(it.MinStock), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar stock bajo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func kardexHeaderRow(k *dto.KardexResponse, generated time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("KARDEX DE PRODUCTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(k.Product.Code+" · "+k.Product.Name, props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 6,
			}),
		),
		col.New(5).Add(
			text.New("Rango: "+rangeLabel(k.From, k.To), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Generado: "+generated.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func balancesRow(k *dto.KardexResponse) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Size: 10, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell("Saldo inicial", formatQuantity(k.OpeningBalance)),
		cell("Saldo final", formatQuantity(k.ClosingBalance)),
		cell("Stock mínimo", formatQuantity(k.Product.MinStock)),
	)
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorPrimary, Top: 2, Left: 1, Right: 1,
	}))
}

func kardexTableHeaderRow() core.Row {
	h := headerCell
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 1, align.Left),
		h("Descripción", 4, align.Left),
		h("Entrada", 1, align.Right),
		h("Salida", 2, align.Right),
		h("Saldo", 2, align.Right),
	)
}

// kardexDetailRows una fila por línea; la cantidad va en la columna de su tipo.
func kardexDetailRows(entries []dto.KardexEntryDTO) []core.Row {
	result := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		in, out := "", ""
		if e.Movement.Type == entity.MovementTypeEntry {
			in = formatQuantity(e.Movement.Quantity)
		} else {
			out = formatQuantity(e.Movement.Quantity)
		}
		balanceProps := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Style: fontstyle.Bold}
		if e.Balance.IsNegative() {
			balanceProps.Color = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(displayDate(e.Movement.Date), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(e.Movement.Type, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(nonEmpty(e.Movement.Description, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(in, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(out, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatQuantity(e.Balance), balanceProps)),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func rangeLabel(from, to *string) string {
	if from == nil && to == nil {
		return "historial completo"
	}
	f, t := "inicio", "hoy"
	if from != nil {
		f = displayDate(*from)
	}
	if to != nil {
		t = displayDate(*to)
	}
	return f + " a " + t
}

// displayDate convierte "2006-01-02" a "02/01/2006"; si no se puede, devuelve s.
func displayDate(s string) string {
	d, err := entity.ParseDate(s)
	if err != nil {
		return s
	}
	return d.Format("02/01/2006")
}

// formatQuantity dos decimales con puntos de miles y coma decimal.
// Ej: 1234.5 → "1.234,50", -3 → "-3,00"
func formatQuantity(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	out := formatThousands(intPart) + "," + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
