// Package pdf implementa la generación de la Representación Impresa del CFDI
// 4.0 (Anexo 20, SAT México).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor + RFC  │  Serie-Folio + Fecha de emisión     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Régimen fiscal                                      │
//	│  RECEPTOR: Nombre + RFC + Uso CFDI + CP                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Clave | Descripción | V.Unit | Importe        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Impuestos / TOTAL           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER SAT: Folio fiscal (UUID) + QR + sellos + leyenda     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"net/url"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/facturamx/facturacion-api/internal/domain/entity"
)

// verificationBaseURL portal de verificación de CFDI del SAT (para el QR).
const verificationBaseURL = "https://verificacfdi.facturaelectronica.sat.gob.mx/default.aspx"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ingest.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, record *entity.InvoiceRecord) ([]byte, error) {
	doc := &record.Document

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Representación Impresa CFDI", true).
		WithAuthor(doc.Issuer.LegalName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(doc))
	m.AddRows(receptorRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de conceptos
	m.AddRows(tableHeaderRow())
	for _, r := range tableConceptRows(doc.LineItems) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))

	// Footer SAT
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range satFooterRows(doc) {
		m.AddRows(r)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + RFC del emisor (izq), Serie-Folio + fecha (der).
func headerRow(doc *entity.Document) core.Row {
	number := doc.Number()
	if number == "" {
		number = "S/F"
	}
	fecha := doc.IssueDate.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(doc.Issuer.LegalName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RFC: "+doc.Issuer.TaxID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CFDI — COMPROBANTE FISCAL DIGITAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// emisorRow: régimen fiscal y versión del comprobante.
func emisorRow(doc *entity.Document) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Régimen fiscal: %s   |   Versión CFDI: %s   |   Moneda: %s",
				nonEmpty(doc.Issuer.FiscalRegime, "—"),
				doc.Version,
				doc.Currency,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// receptorRow: datos del receptor.
func receptorRow(doc *entity.Document) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RECEPTOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Recipient.LegalName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("RFC: %s   |   Uso CFDI: %s   |   C.P.: %s",
				doc.Recipient.TaxID,
				nonEmpty(doc.Recipient.CFDIUse, "—"),
				nonEmpty(doc.Recipient.FiscalDomicile, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de conceptos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Clave", 2, align.Center),
		h("Descripción", 4, align.Left),
		h("V. Unitario", 2, align.Right),
		h("Importe", 3, align.Right),
	)
}

// tableConceptRows: una fila por concepto, en el orden del documento.
func tableConceptRows(items []entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, item := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				item.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				item.ProductCode,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				item.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(item.UnitValue),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(item.Amount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(doc *entity.Document) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(30).Add(
		col.New(3),
		col.New(4).Add(
			label("Subtotal:"),
			label("Descuento:"),
			label("Impuestos trasladados:"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value("$"+formatMoney(doc.Subtotal)),
			value("$"+formatMoney(doc.Discount)),
			value("$"+formatMoney(doc.Taxes.TotalTransferred)),
			grandValue("$"+formatMoney(doc.Total)),
		),
		col.New(2),
	)
}

// satFooterRows: folio fiscal + QR de verificación + sellos + leyenda.
func satFooterRows(doc *entity.Document) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("INFORMACIÓN DEL TIMBRE FISCAL DIGITAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}

	stamp := doc.DigitalStamp
	if stamp.UUID != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Folio fiscal (UUID): "+stamp.UUID, props.Text{
				Style: fontstyle.Bold, Size: 7, Top: 1,
			}),
		)))
	}
	if stamp.ProviderRFC != "" {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(fmt.Sprintf("PAC certificador: %s   |   Fecha de timbrado: %s",
				stamp.ProviderRFC, stamp.StampedAt.Format("02/01/2006 15:04:05")),
				props.Text{Size: 6.5, Color: colorGray, Top: 0.5, Left: 2}),
		)))
	}

	// SelloCFD partido en fragmentos de 110 caracteres
	if stamp.CFDSignature != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Sello digital del CFDI:", props.Text{
				Style: fontstyle.Bold, Size: 7, Top: 1,
			}),
		)))
		for _, chunk := range splitEvery(stamp.CFDSignature, 110) {
			rows = append(rows, row.New(3).Add(col.New(12).Add(
				text.New(chunk, props.Text{Size: 6, Color: colorGray, Top: 0.5, Left: 2}),
			)))
		}
	}

	rows = append(rows, row.New(3))

	// QR con los parámetros del portal de verificación del SAT
	if stamp.UUID != "" {
		rows = append(rows, row.New(45).Add(
			col.New(4).Add(code.NewQr(verificationQRData(doc), props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Escanea el código QR para verificar\neste comprobante en el portal del SAT.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("Este documento es una representación\nimpresa de un CFDI", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 22,
					Left: 3, Color: colorPrimary,
				}),
			),
		))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Comprobante Fiscal Digital por Internet generado conforme al Anexo 20 "+
				"(SAT, México). Conserve este documento como soporte fiscal.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// verificationQRData arma la URL del portal de verificación del SAT con folio
// fiscal, RFCs y total, más los últimos 8 caracteres del sello del emisor.
func verificationQRData(doc *entity.Document) string {
	q := url.Values{}
	q.Set("id", doc.DigitalStamp.UUID)
	q.Set("re", doc.Issuer.TaxID)
	q.Set("rr", doc.Recipient.TaxID)
	q.Set("tt", doc.Total.StringFixed(6))
	if n := len(doc.Stamp); n >= 8 {
		q.Set("fe", doc.Stamp[n-8:])
	}
	return verificationBaseURL + "?" + q.Encode()
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney separa miles con coma y conserva dos decimales.
// Ej: 25000 → "25,000.00", 1000000.5 → "1,000,000.50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	intPart, decPart := s, ""
	if i := len(s) - 3; i > 0 && s[i] == '.' {
		intPart, decPart = s[:i], s[i:]
	}
	neg := false
	if len(intPart) > 0 && intPart[0] == '-' {
		neg = true
		intPart = intPart[1:]
	}
	n := len(intPart)
	if n <= 3 {
		if neg {
			return "-" + intPart + decPart
		}
		return intPart + decPart
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	out := string(buf) + decPart
	if neg {
		return "-" + out
	}
	return out
}

// splitEvery divide s en trozos de max n caracteres.
func splitEvery(s string, n int) []string {
	var parts []string
	for len(s) > n {
		parts = append(parts, s[:n])
		s = s[n:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
