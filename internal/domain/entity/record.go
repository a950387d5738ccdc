package entity

import "time"

// Estados de ciclo de vida de pago asignados en la ingesta.
// "paid" nunca se asigna aquí: el pago es una transición posterior que
// ejecuta un flujo externo, no la ingesta.
const (
	DueStatePending = "pending" // dentro de la ventana de pago
	DueStateOverdue = "overdue" // emitida hace más de la ventana permitida
	DueStatePaid    = "paid"    // solo vía transición posterior
)

// InvoiceRecord es el registro persistido de un comprobante ingresado:
// documento extraído, estado inicial de ciclo de vida, referencia al XML
// original en object storage y su bitácora de actividad.
type InvoiceRecord struct {
	ID             string
	Document       Document
	LifecycleState string // DueStatePending | DueStateOverdue | DueStatePaid
	XMLObjectKey   string // llave del XML original en el blob store
	ContentDigest  string // SHA-256 del XML canónico (integridad, no duplicados)
	CreatedAt      time.Time
	AuditTrail     []AuditEntry // orden estrictamente cronológico, append-only
}

// AppendAudit agrega una entrada al final de la bitácora. Las entradas nunca
// se editan ni se eliminan; el orden de la secuencia es la historia autoritativa.
func (r *InvoiceRecord) AppendAudit(entry AuditEntry) {
	r.AuditTrail = append(r.AuditTrail, entry)
}
