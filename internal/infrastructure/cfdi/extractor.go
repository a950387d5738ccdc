package cfdi

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/facturamx/facturacion-api/internal/domain"
	"github.com/facturamx/facturacion-api/internal/domain/entity"
	"github.com/facturamx/facturacion-api/pkg/sat"
)

// issueDateLayout formato del atributo Fecha según Anexo 20 (sin zona horaria).
const issueDateLayout = "2006-01-02T15:04:05"

// Extract recorre el árbol normalizado y produce el Document tipado.
//
// Tabla de defaults por campo ausente:
//
//	Version       -> "4.0"
//	Moneda        -> "MXN"
//	TipoCambio    -> 1.0
//	SubTotal, Descuento, Total, montos de conceptos e impuestos -> 0.0
//	identificadores (Serie, Folio, Rfc, ...) -> cadena vacía
//
// La ausencia de un campo individual nunca es error de extracción: se propaga
// como vacío/cero y es responsabilidad del validador señalarla. Texto numérico
// no parseable también degrada a 0.0 (lenidad documentada del parseo). Las dos
// excepciones fatales: sin raíz Comprobante (domain.ErrMissingRootElement) y
// Fecha ausente o inválida (domain.ErrInvalidIssueDate), que no admite default.
func Extract(tree *Tree) (*entity.Document, error) {
	root := tree.Root("Comprobante")
	if root == nil {
		return nil, domain.ErrMissingRootElement
	}

	issueDate, err := parseIssueDate(root)
	if err != nil {
		return nil, err
	}

	doc := &entity.Document{
		Version:       attrOr(root, "Version", "4.0"),
		Series:        attrOr(root, "Serie", ""),
		Folio:         attrOr(root, "Folio", ""),
		IssueDate:     issueDate,
		PaymentForm:   attrOr(root, "FormaPago", ""),
		PaymentMethod: attrOr(root, "MetodoPago", ""),
		VoucherType:   attrOr(root, "TipoDeComprobante", ""),
		Currency:      attrOr(root, "Moneda", sat.MonedaDefault),
		ExchangeRate:  attrDecimal(root, "TipoCambio", decimal.NewFromInt(1)),
		Subtotal:      attrDecimal(root, "SubTotal", decimal.Zero),
		Discount:      attrDecimal(root, "Descuento", decimal.Zero),
		Total:         attrDecimal(root, "Total", decimal.Zero),
		Stamp:         attrOr(root, "Sello", ""),
		CertNumber:    attrOr(root, "NoCertificado", ""),
		Certificate:   attrOr(root, "Certificado", ""),
	}

	if emisor := root.Child("Emisor"); emisor != nil {
		doc.Issuer = entity.Issuer{
			TaxID:        attrOr(emisor, "Rfc", ""),
			LegalName:    attrOr(emisor, "Nombre", ""),
			FiscalRegime: attrOr(emisor, "RegimenFiscal", ""),
		}
	}

	if receptor := root.Child("Receptor"); receptor != nil {
		doc.Recipient = entity.Recipient{
			TaxID:          attrOr(receptor, "Rfc", ""),
			LegalName:      attrOr(receptor, "Nombre", ""),
			FiscalDomicile: attrOr(receptor, "DomicilioFiscalReceptor", ""),
			FiscalRegime:   attrOr(receptor, "RegimenFiscalReceptor", ""),
			CFDIUse:        attrOr(receptor, "UsoCFDI", ""),
		}
	}

	if conceptos := root.Child("Conceptos"); conceptos != nil {
		for _, c := range conceptos.Children("Concepto") {
			doc.LineItems = append(doc.LineItems, extractLineItem(c))
		}
	}

	if impuestos := root.Child("Impuestos"); impuestos != nil {
		doc.Taxes = extractTaxes(impuestos)
	}

	if complemento := root.Child("Complemento"); complemento != nil {
		if timbre := complemento.Child("TimbreFiscalDigital"); timbre != nil {
			doc.DigitalStamp = extractStamp(timbre)
		}
	}

	return doc, nil
}

func extractLineItem(c *Node) entity.LineItem {
	return entity.LineItem{
		ProductCode:    attrOr(c, "ClaveProdServ", ""),
		Identification: attrOr(c, "NoIdentificacion", ""),
		Quantity:       attrDecimal(c, "Cantidad", decimal.Zero),
		UnitCode:       attrOr(c, "ClaveUnidad", ""),
		UnitLabel:      attrOr(c, "Unidad", ""),
		Description:    attrOr(c, "Descripcion", ""),
		UnitValue:      attrDecimal(c, "ValorUnitario", decimal.Zero),
		Amount:         attrDecimal(c, "Importe", decimal.Zero),
		Discount:       attrDecimal(c, "Descuento", decimal.Zero),
		TaxObjectCode:  attrOr(c, "ObjetoImp", ""),
	}
}

// extractTaxes lee el resumen de impuestos a nivel comprobante. El Anexo 20
// envuelve las listas en Traslados/Retenciones; algunas exportaciones cuelgan
// los elementos directo de Impuestos, así que se aceptan ambas formas.
func extractTaxes(impuestos *Node) entity.Taxes {
	taxes := entity.Taxes{
		TotalTransferred: attrDecimal(impuestos, "TotalImpuestosTrasladados", decimal.Zero),
		TotalWithheld:    attrDecimal(impuestos, "TotalImpuestosRetenidos", decimal.Zero),
	}

	transferParent := impuestos
	if wrapper := impuestos.Child("Traslados"); wrapper != nil {
		transferParent = wrapper
	}
	for _, t := range transferParent.Children("Traslado") {
		taxes.Transfers = append(taxes.Transfers, entity.TaxTransfer{
			Base:       attrDecimal(t, "Base", decimal.Zero),
			TaxCode:    attrOr(t, "Impuesto", ""),
			FactorType: attrOr(t, "TipoFactor", ""),
			RateQuota:  attrDecimal(t, "TasaOCuota", decimal.Zero),
			Amount:     attrDecimal(t, "Importe", decimal.Zero),
		})
	}

	withholdingParent := impuestos
	if wrapper := impuestos.Child("Retenciones"); wrapper != nil {
		withholdingParent = wrapper
	}
	for _, r := range withholdingParent.Children("Retencion") {
		taxes.Withholdings = append(taxes.Withholdings, entity.TaxWithholding{
			TaxCode: attrOr(r, "Impuesto", ""),
			Amount:  attrDecimal(r, "Importe", decimal.Zero),
		})
	}

	return taxes
}

func extractStamp(timbre *Node) entity.DigitalStamp {
	stamp := entity.DigitalStamp{
		UUID:          attrOr(timbre, "UUID", ""),
		ProviderRFC:   attrOr(timbre, "RfcProvCertif", ""),
		CFDSignature:  attrOr(timbre, "SelloCFD", ""),
		SATCertNumber: attrOr(timbre, "NoCertificadoSAT", ""),
		SATSignature:  attrOr(timbre, "SelloSAT", ""),
		StampVersion:  attrOr(timbre, "Version", ""),
	}
	// FechaTimbrado sí admite degradar a cero: solo la Fecha de emisión es fatal.
	if raw, ok := timbre.Attr("FechaTimbrado"); ok {
		if ts, err := time.Parse(issueDateLayout, strings.TrimSpace(raw)); err == nil {
			stamp.StampedAt = ts
		}
	}
	return stamp
}

func parseIssueDate(root *Node) (time.Time, error) {
	raw, ok := root.Attr("Fecha")
	if !ok || strings.TrimSpace(raw) == "" {
		return time.Time{}, domain.ErrInvalidIssueDate
	}
	ts, err := time.Parse(issueDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidIssueDate, raw)
	}
	return ts, nil
}

// attrOr devuelve el atributo o el default si está ausente o en blanco.
func attrOr(n *Node, name, def string) string {
	if v, ok := n.Attr(name); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

// attrDecimal parsea el atributo como decimal. Ausente o no numérico degrada
// al default sin error; el validador de coherencia es quien señala el caso
// cuando el cero resultante es inverosímil.
func attrDecimal(n *Node, name string, def decimal.Decimal) decimal.Decimal {
	raw, ok := n.Attr(name)
	if !ok {
		return def
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return d
}
