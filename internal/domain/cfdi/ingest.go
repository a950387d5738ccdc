package cfdi

import (
	"context"
	"fmt"
	"time"

	"github.com/facturamx/facturacion-api/internal/domain/entity"
)

// dueWindowDays ventana fija de pago: un comprobante emitido hace más de 30
// días entra como vencido. Constante de política, sin superficie de configuración.
const dueWindowDays = 30

// IngestionStatus discrimina el resultado de la decisión de ingesta.
type IngestionStatus string

const (
	IngestionAccepted          IngestionStatus = "accepted"
	IngestionRejected          IngestionStatus = "rejected"
	IngestionDuplicateRejected IngestionStatus = "duplicate_rejected"
)

// IngestionOutcome variante etiquetada del resultado de ingesta.
// Accepted lleva DueState; DuplicateRejected lleva el UUID ya existente;
// Rejected lleva la razón.
type IngestionOutcome struct {
	Status       IngestionStatus
	DueState     string // solo con IngestionAccepted
	ExistingUUID string // solo con IngestionDuplicateRejected
	Reason       string // solo con IngestionRejected
}

// UUIDLookup capacidad de consulta de duplicados: responde si ya existe un
// registro con ese folio fiscal. La implementa el colaborador de persistencia.
type UUIDLookup interface {
	ExistsByUUID(ctx context.Context, uuid string) (bool, error)
}

// Decide toma la decisión de ingesta para un documento ya validado (el caller
// debe haber rechazado documentos inválidos antes de llegar aquí; este
// componente no revalida).
//
// 1. Consulta duplicados por UUID del timbre: si existe, rechazo duro, sin
//    aceptación parcial ni sobrescritura (el folio fiscal es el identificador
//    único ante el SAT; reingresarlo jamás debe crear un segundo registro).
// 2. Si no, clasifica el estado de vencimiento contra la ventana de 30 días.
//
// Una falla del colaborador de consulta se propaga como error de
// infraestructura, nunca se confunde con DuplicateRejected.
func Decide(ctx context.Context, doc *entity.Document, lookup UUIDLookup, now time.Time) (IngestionOutcome, error) {
	exists, err := lookup.ExistsByUUID(ctx, doc.DigitalStamp.UUID)
	if err != nil {
		return IngestionOutcome{}, fmt.Errorf("consultar duplicado por UUID: %w", err)
	}
	if exists {
		return IngestionOutcome{
			Status:       IngestionDuplicateRejected,
			ExistingUUID: doc.DigitalStamp.UUID,
		}, nil
	}
	return IngestionOutcome{
		Status:   IngestionAccepted,
		DueState: classifyDueState(doc.IssueDate, now),
	}, nil
}

// classifyDueState clasificación inicial de dos estados. Exactamente 30 días
// de antigüedad sigue siendo pending; un día más atrás ya es overdue.
// "paid" nunca se asigna en la ingesta.
func classifyDueState(issueDate, now time.Time) string {
	cutoff := now.AddDate(0, 0, -dueWindowDays)
	if issueDate.Before(cutoff) {
		return entity.DueStateOverdue
	}
	return entity.DueStatePending
}
