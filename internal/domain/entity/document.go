package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document es la representación tipada de un CFDI 4.0 (Comprobante Fiscal
// Digital por Internet) extraído del XML. Inmutable una vez producido por el
// extractor: los cambios de estado posteriores generan registros derivados,
// nunca mutaciones de este valor.
type Document struct {
	Version       string          // debe iniciar con "4" para ser aceptado
	Series        string          // Serie
	Folio         string          // Folio (puede estar vacío)
	IssueDate     time.Time
	PaymentForm   string          // FormaPago (catálogo c_FormaPago, consultivo)
	PaymentMethod string          // MetodoPago (catálogo c_MetodoPago, consultivo)
	VoucherType   string          // TipoDeComprobante
	Currency      string          // Moneda; "MXN" si el comprobante no la declara
	ExchangeRate  decimal.Decimal // TipoCambio; 1.0 por defecto
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	Stamp         string          // Sello del emisor (base64)
	CertNumber    string          // NoCertificado
	Certificate   string          // Certificado (base64)
	Issuer        Issuer
	Recipient     Recipient
	LineItems     []LineItem      // orden de inserción = orden del documento
	Taxes         Taxes
	DigitalStamp  DigitalStamp
}

// Number devuelve el número legible de la factura (Serie + Folio).
func (d Document) Number() string {
	return d.Series + d.Folio
}

// Issuer datos del emisor del comprobante.
type Issuer struct {
	TaxID        string // Rfc
	LegalName    string // Nombre
	FiscalRegime string // RegimenFiscal
}

// Recipient datos del receptor del comprobante.
type Recipient struct {
	TaxID          string // Rfc
	LegalName      string // Nombre
	FiscalDomicile string // DomicilioFiscalReceptor (código postal)
	FiscalRegime   string // RegimenFiscalReceptor
	CFDIUse        string // UsoCFDI
}

// LineItem un Concepto del comprobante.
type LineItem struct {
	ProductCode    string          // ClaveProdServ
	Identification string          // NoIdentificacion
	Quantity       decimal.Decimal // Cantidad
	UnitCode       string          // ClaveUnidad
	UnitLabel      string          // Unidad
	Description    string          // Descripcion
	UnitValue      decimal.Decimal // ValorUnitario
	Amount         decimal.Decimal // Importe
	Discount       decimal.Decimal // Descuento
	TaxObjectCode  string          // ObjetoImp
}

// Taxes resumen de impuestos a nivel comprobante.
type Taxes struct {
	TotalTransferred decimal.Decimal // TotalImpuestosTrasladados
	TotalWithheld    decimal.Decimal // TotalImpuestosRetenidos
	Transfers        []TaxTransfer
	Withholdings     []TaxWithholding
}

// TaxTransfer un Traslado (impuesto trasladado: IVA, IEPS).
type TaxTransfer struct {
	Base       decimal.Decimal
	TaxCode    string          // Impuesto (catálogo c_Impuesto)
	FactorType string          // TipoFactor (Tasa, Cuota, Exento)
	RateQuota  decimal.Decimal // TasaOCuota
	Amount     decimal.Decimal // Importe
}

// TaxWithholding una Retención (impuesto retenido: ISR, IVA retenido).
type TaxWithholding struct {
	TaxCode string          // Impuesto
	Amount  decimal.Decimal // Importe
}

// DigitalStamp metadatos del Timbre Fiscal Digital (complemento tfd).
// El UUID es el folio fiscal: identificador único del comprobante ante el SAT
// y única llave usada para detección de duplicados.
type DigitalStamp struct {
	UUID          string
	StampedAt     time.Time // FechaTimbrado
	ProviderRFC   string    // RfcProvCertif (PAC que timbró)
	CFDSignature  string    // SelloCFD
	SATCertNumber string    // NoCertificadoSAT
	SATSignature  string    // SelloSAT
	StampVersion  string    // Version del timbre
}
