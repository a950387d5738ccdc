package ingest

import (
	"context"

	"github.com/facturamx/facturacion-api/internal/domain/entity"
)

// InvoicePDFGenerator genera la representación impresa de un comprobante ingresado.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, record *entity.InvoiceRecord) ([]byte, error)
}
