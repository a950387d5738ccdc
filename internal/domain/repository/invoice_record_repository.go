package repository

import (
	"context"

	"github.com/facturamx/facturacion-api/internal/domain/entity"
)

// InvoiceRecordRepository define el puerto de persistencia para los registros
// de comprobantes ingresados y su bitácora.
type InvoiceRecordRepository interface {
	// Create persiste el registro con sus entradas de bitácora en una sola
	// transacción. La constraint UNIQUE sobre el UUID del timbre es la
	// barrera autoritativa contra duplicados: una violación se reporta como
	// domain.ErrDuplicate.
	Create(ctx context.Context, record *entity.InvoiceRecord) error
	// ExistsByUUID responde si ya existe un registro con ese folio fiscal.
	ExistsByUUID(ctx context.Context, uuid string) (bool, error)
	GetByID(ctx context.Context, id string) (*entity.InvoiceRecord, error)
	// List devuelve registros ordenados por fecha de creación descendente.
	List(ctx context.Context, limit, offset int) ([]*entity.InvoiceRecord, error)
}
