package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/facturamx/facturacion-api/internal/domain/entity"
)

// ErrorResponse respuesta de error de la API. Errors lleva la lista completa
// de violaciones cuando el comprobante no pasa la validación.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// UploadResult resultado de la ingesta de un XML.
// Status: "accepted" | "duplicate_rejected".
type UploadResult struct {
	Status       string                 `json:"status"`
	DueState     string                 `json:"due_state,omitempty"`
	ExistingUUID string                 `json:"existing_uuid,omitempty"`
	Record       *InvoiceRecordResponse `json:"record,omitempty"`
}

// InvoiceRecordResponse proyección del registro persistido para la API.
type InvoiceRecordResponse struct {
	ID             string               `json:"id"`
	Number         string               `json:"number"` // Serie + Folio
	UUID           string               `json:"uuid"`   // folio fiscal del timbre
	Version        string               `json:"version"`
	IssuerRFC      string               `json:"issuer_rfc"`
	IssuerName     string               `json:"issuer_name"`
	ReceiverRFC    string               `json:"receiver_rfc"`
	ReceiverName   string               `json:"receiver_name"`
	Currency       string               `json:"currency"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	Discount       decimal.Decimal      `json:"discount"`
	Total          decimal.Decimal      `json:"total"`
	IssueDate      time.Time            `json:"issue_date"`
	LifecycleState string               `json:"lifecycle_state"`
	XMLObjectKey   string               `json:"xml_object_key"`
	ContentDigest  string               `json:"content_digest"`
	CreatedAt      time.Time            `json:"created_at"`
	LineItems      []LineItemResponse   `json:"line_items"`
	AuditTrail     []AuditEntryResponse `json:"audit_trail,omitempty"`
}

// LineItemResponse un concepto del comprobante.
type LineItemResponse struct {
	ProductCode string          `json:"product_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCode    string          `json:"unit_code"`
	Description string          `json:"description"`
	UnitValue   decimal.Decimal `json:"unit_value"`
	Amount      decimal.Decimal `json:"amount"`
}

// AuditEntryResponse una entrada de la bitácora.
type AuditEntryResponse struct {
	Timestamp   time.Time `json:"timestamp"`
	ActorName   string    `json:"actor_name"`
	ActionLabel string    `json:"action_label"`
	Detail      string    `json:"detail"`
}

// FromInvoiceRecord mapea el registro de dominio a la respuesta de la API.
func FromInvoiceRecord(record *entity.InvoiceRecord) *InvoiceRecordResponse {
	resp := &InvoiceRecordResponse{
		ID:             record.ID,
		Number:         record.Document.Number(),
		UUID:           record.Document.DigitalStamp.UUID,
		Version:        record.Document.Version,
		IssuerRFC:      record.Document.Issuer.TaxID,
		IssuerName:     record.Document.Issuer.LegalName,
		ReceiverRFC:    record.Document.Recipient.TaxID,
		ReceiverName:   record.Document.Recipient.LegalName,
		Currency:       record.Document.Currency,
		Subtotal:       record.Document.Subtotal,
		Discount:       record.Document.Discount,
		Total:          record.Document.Total,
		IssueDate:      record.Document.IssueDate,
		LifecycleState: record.LifecycleState,
		XMLObjectKey:   record.XMLObjectKey,
		ContentDigest:  record.ContentDigest,
		CreatedAt:      record.CreatedAt,
	}
	for _, item := range record.Document.LineItems {
		resp.LineItems = append(resp.LineItems, LineItemResponse{
			ProductCode: item.ProductCode,
			Quantity:    item.Quantity,
			UnitCode:    item.UnitCode,
			Description: item.Description,
			UnitValue:   item.UnitValue,
			Amount:      item.Amount,
		})
	}
	for _, entry := range record.AuditTrail {
		resp.AuditTrail = append(resp.AuditTrail, AuditEntryResponse{
			Timestamp:   entry.Timestamp,
			ActorName:   entry.ActorName,
			ActionLabel: entry.ActionLabel,
			Detail:      entry.Detail,
		})
	}
	return resp
}
