// Package pdf exporta los reportes de inventario a PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Negocio + título     │  Origen (vivo / snapshot)    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: conteos o totales globales                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una fila por artículo o ubicación                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: fecha de generación                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

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

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/ports"
	"github.com/jhoicas/retail-inventory/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 192, Green: 0, Blue: 0}
	colorYellow  = &props.Color{Red: 191, Green: 144, Blue: 0}
	colorGreen   = &props.Color{Red: 0, Green: 128, Blue: 0}
)

var _ ports.ReportRenderer = (*MarotoReportRenderer)(nil)

// MarotoReportRenderer implementa ports.ReportRenderer usando Maroto v2.
type MarotoReportRenderer struct{}

// NewMarotoReportRenderer construye el renderer.
func NewMarotoReportRenderer() *MarotoReportRenderer { return &MarotoReportRenderer{} }

// LowStockPDF genera el reporte de bajo stock.
func (g *MarotoReportRenderer) LowStockPDF(businessName string, report *dto.LowStockReport) ([]byte, error) {
	m := newDocument(businessName, "Low stock report")

	m.AddRows(headerRow(businessName, "LOW STOCK REPORT", report.Source))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	s := report.Summary
	m.AddRows(summaryRow(
		[2]string{"Out of stock", strconv.Itoa(s.OutOfStock)},
		[2]string{"Below minimum", strconv.Itoa(s.BelowMinimum)},
		[2]string{"Near minimum", strconv.Itoa(s.NearMinimum)},
		[2]string{"Total", strconv.Itoa(s.Total)},
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(
		cell{"Item", 4, align.Left},
		cell{"SKU", 2, align.Left},
		cell{"Category", 2, align.Left},
		cell{"Qty", 1, align.Right},
		cell{"Min", 1, align.Right},
		cell{"Status", 2, align.Center},
	))
	if len(report.Items) == 0 {
		m.AddRows(emptyRow("No items below their minimum stock level."))
	}
	for _, it := range report.Items {
		category := "Uncategorised"
		if it.CategoryName != nil {
			category = *it.CategoryName
		}
		m.AddRows(row.New(7).Add(
			bodyCol(4, it.Name, align.Left, nil),
			bodyCol(2, nonEmpty(it.SKU, "-"), align.Left, nil),
			bodyCol(2, category, align.Left, nil),
			bodyCol(1, strconv.Itoa(it.Quantity), align.Right, nil),
			bodyCol(1, strconv.Itoa(it.MinStockLevel), align.Right, nil),
			bodyCol(2, lowStockLabel(it.Status), align.Center, lowStockColor(it.Status)),
		))
	}

	m.AddRows(footerRows(report.Source)...)
	return generate(m)
}

// SpaceUtilisationPDF genera el reporte de utilización de espacio.
func (g *MarotoReportRenderer) SpaceUtilisationPDF(businessName string, report *dto.SpaceUtilisationReport) ([]byte, error) {
	m := newDocument(businessName, "Space utilisation report")

	m.AddRows(headerRow(businessName, "SPACE UTILISATION REPORT", report.Source))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	s := report.Summary
	mostUtilised := "-"
	if s.MostUtilised != nil {
		mostUtilised = fmt.Sprintf("%s (%s%%)", s.MostUtilised.Name, s.MostUtilised.UtilisationPct.StringFixed(1))
	}
	m.AddRows(summaryRow(
		[2]string{"Capacity (RSU)", s.TotalCapacity.StringFixed(2)},
		[2]string{"Used (RSU)", s.TotalUsed.StringFixed(2)},
		[2]string{"Overall", s.OverallPct.StringFixed(1) + "% " + s.OverallStatus},
		[2]string{"Most utilised", mostUtilised},
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(
		cell{"Location", 3, align.Left},
		cell{"Code", 2, align.Left},
		cell{"Capacity", 2, align.Right},
		cell{"Used", 2, align.Right},
		cell{"Use %", 1, align.Right},
		cell{"Status", 2, align.Center},
	))
	if len(report.Locations) == 0 {
		m.AddRows(emptyRow("No locations defined."))
	}
	for _, l := range report.Locations {
		m.AddRows(row.New(7).Add(
			bodyCol(3, l.Name, align.Left, nil),
			bodyCol(2, l.Code, align.Left, nil),
			bodyCol(2, l.CapacityRSU.StringFixed(2), align.Right, nil),
			bodyCol(2, l.UsedRSU.StringFixed(2), align.Right, nil),
			bodyCol(1, l.UtilisationPct.StringFixed(1), align.Right, nil),
			bodyCol(2, l.Status, align.Center, capacityColor(l.StatusColor)),
		))
	}

	m.AddRows(footerRows(report.Source)...)
	return generate(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func newDocument(businessName, title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(businessName, true).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: negocio + título (izq) y origen de los datos (der).
func headerRow(businessName, title string, src dto.ReportSourceInfo) core.Row {
	origin := "Live data"
	if !src.Live && src.SnapshotDate != nil {
		origin = "Snapshot of " + src.SnapshotDate.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(origin, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
		),
	)
}

// summaryRow: cuatro pares etiqueta/valor.
func summaryRow(pairs ...[2]string) core.Row {
	cols := make([]core.Col, 0, len(pairs))
	for _, p := range pairs {
		cols = append(cols, col.New(12/len(pairs)).Add(
			text.New(p[0], props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(p[1], props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
		))
	}
	return row.New(14).Add(cols...)
}

type cell struct {
	label string
	size  int
	align align.Type
}

func tableHeaderRow(cells ...cell) core.Row {
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

func bodyCol(size int, value string, a align.Type, color *props.Color) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: color,
	}))
}

func emptyRow(msg string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
	))
}

func footerRows(src dto.ReportSourceInfo) []core.Row {
	return []core.Row{
		line.NewRow(3),
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}),
		row.New(6).Add(col.New(12).Add(
			text.New("Generated "+src.GeneratedAt.Format("02/01/2006 15:04")+" UTC", props.Text{
				Size: 6.5, Color: colorGray, Top: 2,
			}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func lowStockLabel(status string) string {
	switch status {
	case inventory.StockOutOfStock:
		return "Out of stock"
	case inventory.StockBelowMinimum:
		return "Below minimum"
	case inventory.StockNearMinimum:
		return "Near minimum"
	}
	return status
}

func lowStockColor(status string) *props.Color {
	switch status {
	case inventory.StockOutOfStock:
		return colorRed
	case inventory.StockBelowMinimum:
		return colorYellow
	}
	return nil
}

func capacityColor(statusColor string) *props.Color {
	switch statusColor {
	case "red":
		return colorRed
	case "yellow":
		return colorYellow
	case "green":
		return colorGreen
	}
	return nil
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
