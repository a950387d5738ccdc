// Package ingest orquesta la tubería de ingesta de CFDI:
// normalizar -> extraer -> validar -> decidir -> guardar XML -> persistir.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/facturamx/facturacion-api/internal/application/dto"
	"github.com/facturamx/facturacion-api/internal/domain"
	domaincfdi "github.com/facturamx/facturacion-api/internal/domain/cfdi"
	"github.com/facturamx/facturacion-api/internal/domain/entity"
	"github.com/facturamx/facturacion-api/internal/domain/repository"
	infracfdi "github.com/facturamx/facturacion-api/internal/infrastructure/cfdi"
	"github.com/facturamx/facturacion-api/internal/infrastructure/storage"
	"github.com/facturamx/facturacion-api/pkg/logger"
)

// UploadInvoiceUseCase ingesta un CFDI 4.0 desde su XML y produce el registro
// auditable persistido. La tubería es síncrona: cada etapa consume la salida
// completa de la anterior y el único punto de I/O previo a la escritura es la
// consulta de duplicados.
type UploadInvoiceUseCase struct {
	records repository.InvoiceRecordRepository
	blobs   storage.BlobStore
	log     *logger.Logger
	now     func() time.Time
}

// NewUploadInvoiceUseCase construye el caso de uso.
func NewUploadInvoiceUseCase(
	records repository.InvoiceRecordRepository,
	blobs storage.BlobStore,
	log *logger.Logger,
) *UploadInvoiceUseCase {
	return &UploadInvoiceUseCase{
		records: records,
		blobs:   blobs,
		log:     log,
		now:     time.Now,
	}
}

// Upload procesa el XML de un comprobante.
//
// Errores de parseo (domain.ErrMalformedXML, domain.ErrMissingRootElement,
// domain.ErrInvalidIssueDate) abortan antes de validar. Las violaciones de
// validación se devuelven completas en un *cfdi.ValidationError, nunca solo
// la primera. Un duplicado no es error: es un resultado esperado
// (duplicate_rejected). Las fallas de infraestructura (lookup, storage, DB)
// se propagan como error.
func (uc *UploadInvoiceUseCase) Upload(ctx context.Context, actorName string, xmlPayload []byte) (*dto.UploadResult, error) {
	tree, err := infracfdi.Normalize(xmlPayload)
	if err != nil {
		return nil, err
	}
	doc, err := infracfdi.Extract(tree)
	if err != nil {
		return nil, err
	}

	if result := domaincfdi.Validate(doc); !result.Valid {
		return nil, &domaincfdi.ValidationError{Violations: result.Errors}
	}

	now := uc.now()
	outcome, err := domaincfdi.Decide(ctx, doc, uc.records, now)
	if err != nil {
		return nil, err
	}
	if outcome.Status == domaincfdi.IngestionDuplicateRejected {
		uc.log.Info().
			Str("uuid", outcome.ExistingUUID).
			Msg("comprobante duplicado rechazado")
		return &dto.UploadResult{
			Status:       string(outcome.Status),
			ExistingUUID: outcome.ExistingUUID,
		}, nil
	}

	digest, err := infracfdi.CanonicalDigest(xmlPayload)
	if err != nil {
		return nil, fmt.Errorf("calcular huella del XML: %w", err)
	}

	key := "cfdi/" + doc.DigitalStamp.UUID + ".xml"
	if err := uc.blobs.Put(ctx, key, xmlPayload, "application/xml"); err != nil {
		return nil, fmt.Errorf("guardar XML original: %w", err)
	}

	record := &entity.InvoiceRecord{
		Document:       *doc,
		LifecycleState: outcome.DueState,
		XMLObjectKey:   key,
		ContentDigest:  digest,
		CreatedAt:      now,
	}
	record.AppendAudit(entity.NewCreationEntry(now, actorName))

	if err := uc.records.Create(ctx, record); err != nil {
		// Carrera entre la consulta y el insert: la constraint única manda.
		if errors.Is(err, domain.ErrDuplicate) {
			uc.log.Warn().
				Str("uuid", doc.DigitalStamp.UUID).
				Msg("duplicado detectado por constraint al insertar")
			return &dto.UploadResult{
				Status:       string(domaincfdi.IngestionDuplicateRejected),
				ExistingUUID: doc.DigitalStamp.UUID,
			}, nil
		}
		return nil, fmt.Errorf("persistir registro: %w", err)
	}

	uc.log.Info().
		Str("uuid", doc.DigitalStamp.UUID).
		Str("number", doc.Number()).
		Str("due_state", outcome.DueState).
		Msg("comprobante ingresado")

	return &dto.UploadResult{
		Status:   string(outcome.Status),
		DueState: outcome.DueState,
		Record:   dto.FromInvoiceRecord(record),
	}, nil
}

// GetRecord devuelve un registro con su bitácora.
func (uc *UploadInvoiceUseCase) GetRecord(ctx context.Context, id string) (*dto.InvoiceRecordResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	record, err := uc.records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromInvoiceRecord(record), nil
}

// ListRecords devuelve los registros más recientes.
func (uc *UploadInvoiceUseCase) ListRecords(ctx context.Context, limit, offset int) ([]*dto.InvoiceRecordResponse, error) {
	records, err := uc.records.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceRecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, dto.FromInvoiceRecord(record))
	}
	return out, nil
}
