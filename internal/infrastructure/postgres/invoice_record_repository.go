package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/facturamx/facturacion-api/internal/domain"
	"github.com/facturamx/facturacion-api/internal/domain/entity"
	"github.com/facturamx/facturacion-api/internal/domain/repository"
)

var _ repository.InvoiceRecordRepository = (*InvoiceRecordRepo)(nil)

// InvoiceRecordRepo implementación PostgreSQL de InvoiceRecordRepository.
//
// Esquema:
//
//	invoice_records(id, stamp_uuid UNIQUE, series, folio, issuer_rfc,
//	    receiver_rfc, currency, subtotal, total, issue_date, lifecycle_state,
//	    xml_object_key, content_digest, document JSONB, created_at)
//	audit_entries(id, record_id -> invoice_records, position, ts,
//	    actor_name, action_label, detail)
//
// El documento completo va en JSONB; las columnas planas existen para
// listados y filtros sin deserializar. El UNIQUE sobre stamp_uuid es la
// barrera autoritativa contra ingestas duplicadas del mismo folio fiscal.
type InvoiceRecordRepo struct {
	pool *pgxpool.Pool
}

// NewInvoiceRecordRepository construye el adaptador.
func NewInvoiceRecordRepository(pool *pgxpool.Pool) *InvoiceRecordRepo {
	return &InvoiceRecordRepo{pool: pool}
}

// Create persiste el registro y su bitácora en una sola transacción.
// Una violación del UNIQUE de stamp_uuid se reporta como domain.ErrDuplicate.
func (r *InvoiceRecordRepo) Create(ctx context.Context, record *entity.InvoiceRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	docJSON, err := json.Marshal(record.Document)
	if err != nil {
		return fmt.Errorf("serializar documento: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO invoice_records (id, stamp_uuid, series, folio, issuer_rfc, receiver_rfc,
			currency, subtotal, total, issue_date, lifecycle_state, xml_object_key,
			content_digest, document, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = tx.Exec(ctx, query,
		record.ID, record.Document.DigitalStamp.UUID,
		record.Document.Series, record.Document.Folio,
		record.Document.Issuer.TaxID, record.Document.Recipient.TaxID,
		record.Document.Currency, record.Document.Subtotal, record.Document.Total,
		record.Document.IssueDate, record.LifecycleState, record.XMLObjectKey,
		record.ContentDigest, docJSON, record.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: folio fiscal %s", domain.ErrDuplicate, record.Document.DigitalStamp.UUID)
		}
		return fmt.Errorf("insert invoice record: %w", err)
	}

	for i, entry := range record.AuditTrail {
		_, err = tx.Exec(ctx, `
			INSERT INTO audit_entries (id, record_id, position, ts, actor_name, action_label, detail)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New().String(), record.ID, i,
			entry.Timestamp, entry.ActorName, entry.ActionLabel, entry.Detail,
		)
		if err != nil {
			return fmt.Errorf("insert audit entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ExistsByUUID responde si ya hay un registro con ese folio fiscal.
// Es el fast-path de detección de duplicados; la constraint única respalda
// la garantía bajo ingestas concurrentes.
func (r *InvoiceRecordRepo) ExistsByUUID(ctx context.Context, stampUUID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM invoice_records WHERE stamp_uuid = $1)`, stampUUID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("consultar existencia por UUID: %w", err)
	}
	return exists, nil
}

// GetByID devuelve el registro con su bitácora en orden cronológico.
func (r *InvoiceRecordRepo) GetByID(ctx context.Context, id string) (*entity.InvoiceRecord, error) {
	record := &entity.InvoiceRecord{}
	var docJSON []byte
	err := r.pool.QueryRow(ctx, `
		SELECT id, lifecycle_state, xml_object_key, content_digest, document, created_at
		FROM invoice_records WHERE id = $1`, id,
	).Scan(&record.ID, &record.LifecycleState, &record.XMLObjectKey,
		&record.ContentDigest, &docJSON, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select invoice record: %w", err)
	}
	if err := json.Unmarshal(docJSON, &record.Document); err != nil {
		return nil, fmt.Errorf("deserializar documento: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT ts, actor_name, action_label, detail
		FROM audit_entries WHERE record_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("select audit entries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var entry entity.AuditEntry
		if err := rows.Scan(&entry.Timestamp, &entry.ActorName, &entry.ActionLabel, &entry.Detail); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		record.AuditTrail = append(record.AuditTrail, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar audit entries: %w", err)
	}
	return record, nil
}

// List devuelve registros sin bitácora, más recientes primero.
func (r *InvoiceRecordRepo) List(ctx context.Context, limit, offset int) ([]*entity.InvoiceRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, lifecycle_state, xml_object_key, content_digest, document, created_at
		FROM invoice_records ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoice records: %w", err)
	}
	defer rows.Close()

	var out []*entity.InvoiceRecord
	for rows.Next() {
		record := &entity.InvoiceRecord{}
		var docJSON []byte
		var createdAt time.Time
		if err := rows.Scan(&record.ID, &record.LifecycleState, &record.XMLObjectKey,
			&record.ContentDigest, &docJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan invoice record: %w", err)
		}
		record.CreatedAt = createdAt
		if err := json.Unmarshal(docJSON, &record.Document); err != nil {
			return nil, fmt.Errorf("deserializar documento: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar invoice records: %w", err)
	}
	return out, nil
}
