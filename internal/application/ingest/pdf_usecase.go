package ingest

import (
	"context"
	"fmt"

	"github.com/facturamx/facturacion-api/internal/domain"
	"github.com/facturamx/facturacion-api/internal/domain/repository"
)

// PDFUseCase genera la representación impresa (PDF) de un comprobante ingresado.
type PDFUseCase struct {
	records   repository.InvoiceRecordRepository
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(records repository.InvoiceRecordRepository, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{records: records, generator: generator}
}

// DownloadInvoicePDF recupera el registro y genera su representación impresa.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si el registro no existe.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, recordID string) (pdfBytes []byte, filename string, err error) {
	if recordID == "" {
		return nil, "", domain.ErrInvalidInput
	}
	record, err := uc.records.GetByID(ctx, recordID)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, record)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	number := record.Document.Number()
	if number == "" {
		number = record.Document.DigitalStamp.UUID
	}
	filename = fmt.Sprintf("cfdi_%s.pdf", number)
	return pdfBytes, filename, nil
}
