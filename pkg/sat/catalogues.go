// Package sat contiene catálogos y validaciones de formato alineados al Anexo 20
// de CFDI 4.0 (SAT, México). Los catálogos son de referencia: la pertenencia a
// catálogo es consultiva y no bloquea la ingesta de un comprobante.
package sat

// =============================================================================
// Catálogo c_FormaPago (Anexo 20 - forma en que se realizó el pago)
// =============================================================================

const (
	FormaPagoEfectivo             = "01" // Efectivo
	FormaPagoChequeNominativo     = "02" // Cheque nominativo
	FormaPagoTransferencia        = "03" // Transferencia electrónica de fondos
	FormaPagoTarjetaCredito       = "04" // Tarjeta de crédito
	FormaPagoMonederoElectronico  = "05" // Monedero electrónico
	FormaPagoDineroElectronico    = "06" // Dinero electrónico
	FormaPagoTarjetaDebito        = "28" // Tarjeta de débito
	FormaPagoPorDefinir           = "99" // Por definir
)

// ValidFormaPagoCodes códigos de forma de pago de uso común (no exhaustivo).
var ValidFormaPagoCodes = map[string]bool{
	FormaPagoEfectivo: true, FormaPagoChequeNominativo: true,
	FormaPagoTransferencia: true, FormaPagoTarjetaCredito: true,
	FormaPagoMonederoElectronico: true, FormaPagoDineroElectronico: true,
	FormaPagoTarjetaDebito: true, FormaPagoPorDefinir: true,
}

// =============================================================================
// Catálogo c_MetodoPago (Anexo 20)
// =============================================================================

const (
	MetodoPagoUnaExhibicion = "PUE" // Pago en una sola exhibición
	MetodoPagoParcialidades = "PPD" // Pago en parcialidades o diferido
)

// ValidMetodoPagoCodes códigos de método de pago válidos.
var ValidMetodoPagoCodes = map[string]bool{
	MetodoPagoUnaExhibicion: true,
	MetodoPagoParcialidades: true,
}

// =============================================================================
// Catálogo c_TipoDeComprobante (Anexo 20)
// =============================================================================

const (
	TipoComprobanteIngreso  = "I" // Ingreso (factura de venta)
	TipoComprobanteEgreso   = "E" // Egreso (nota de crédito)
	TipoComprobanteTraslado = "T" // Traslado
	TipoComprobanteNomina   = "N" // Nómina
	TipoComprobantePago     = "P" // Pago (complemento de recepción de pagos)
)

// ValidTipoComprobanteCodes tipos de comprobante del catálogo SAT.
var ValidTipoComprobanteCodes = map[string]bool{
	TipoComprobanteIngreso: true, TipoComprobanteEgreso: true,
	TipoComprobanteTraslado: true, TipoComprobanteNomina: true,
	TipoComprobantePago: true,
}

// =============================================================================
// Catálogo c_UsoCFDI (Anexo 20 - uso que el receptor dará al comprobante)
// =============================================================================

const (
	UsoCFDIAdquisicionMercancias = "G01"  // Adquisición de mercancías
	UsoCFDIDevoluciones          = "G02"  // Devoluciones, descuentos o bonificaciones
	UsoCFDIGastosGeneral         = "G03"  // Gastos en general
	UsoCFDISinEfectosFiscales    = "S01"  // Sin efectos fiscales
	UsoCFDIPagos                 = "CP01" // Pagos
)

// ValidUsoCFDICodes usos de CFDI de uso común (no exhaustivo).
var ValidUsoCFDICodes = map[string]bool{
	UsoCFDIAdquisicionMercancias: true, UsoCFDIDevoluciones: true,
	UsoCFDIGastosGeneral: true, UsoCFDISinEfectosFiscales: true,
	UsoCFDIPagos: true,
}

// =============================================================================
// Catálogo c_RegimenFiscal (Anexo 20 - régimen del emisor/receptor)
// =============================================================================

const (
	RegimenGeneralPersonasMorales  = "601" // General de Ley Personas Morales
	RegimenPersonasFisicas         = "612" // Personas Físicas con Actividades Empresariales
	RegimenSueldosSalarios         = "605" // Sueldos y Salarios
	RegimenSimplificadoConfianza   = "626" // Régimen Simplificado de Confianza (RESICO)
	RegimenSinObligaciones         = "616" // Sin obligaciones fiscales
)

// ValidRegimenFiscalCodes regímenes fiscales de uso común (no exhaustivo).
var ValidRegimenFiscalCodes = map[string]bool{
	RegimenGeneralPersonasMorales: true, RegimenPersonasFisicas: true,
	RegimenSueldosSalarios: true, RegimenSimplificadoConfianza: true,
	RegimenSinObligaciones: true,
}

// =============================================================================
// Catálogo c_Impuesto (Anexo 20 - impuestos trasladados y retenidos)
// =============================================================================

const (
	ImpuestoISR  = "001" // ISR
	ImpuestoIVA  = "002" // IVA
	ImpuestoIEPS = "003" // IEPS
)

// ValidImpuestoCodes códigos de impuesto del catálogo SAT.
var ValidImpuestoCodes = map[string]bool{
	ImpuestoISR: true, ImpuestoIVA: true, ImpuestoIEPS: true,
}

// MonedaDefault moneda por defecto cuando el comprobante no declara Moneda.
const MonedaDefault = "MXN"
