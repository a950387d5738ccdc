package entity

import "time"

// Etiquetas de acción de la bitácora.
const (
	AuditActionCreated = "Created"
)

// Detalle fijo de la entrada de creación.
const auditDetailCreatedFromXML = "Invoice created from XML upload"

// AuditEntry una entrada inmutable de la bitácora de actividad de una factura.
type AuditEntry struct {
	Timestamp   time.Time
	ActorName   string
	ActionLabel string
	Detail      string
}

// NewCreationEntry construye la entrada única que se agrega al ingresar un
// comprobante desde XML.
func NewCreationEntry(now time.Time, actorName string) AuditEntry {
	return AuditEntry{
		Timestamp:   now,
		ActorName:   actorName,
		ActionLabel: AuditActionCreated,
		Detail:      auditDetailCreatedFromXML,
	}
}
