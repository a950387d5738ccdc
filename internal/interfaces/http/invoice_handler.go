package http

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/facturamx/facturacion-api/internal/application/dto"
	"github.com/facturamx/facturacion-api/internal/application/ingest"
	"github.com/facturamx/facturacion-api/internal/domain"
	"github.com/facturamx/facturacion-api/internal/domain/cfdi"
)

// InvoiceHandler maneja las peticiones HTTP de ingesta y consulta de comprobantes.
type InvoiceHandler struct {
	uploadUC *ingest.UploadInvoiceUseCase
	pdfUC    *ingest.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uploadUC *ingest.UploadInvoiceUseCase, pdfUC *ingest.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uploadUC: uploadUC, pdfUC: pdfUC}
}

// Upload ingesta el XML de un CFDI 4.0.
// POST /api/invoices/upload
// Acepta multipart (campo "file") o el XML directo en el cuerpo.
func (h *InvoiceHandler) Upload(c *fiber.Ctx) error {
	payload, err := readXMLPayload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el XML"})
	}
	if len(payload) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo vacío"})
	}

	actor := c.Get("X-Actor-Name")
	if actor == "" {
		actor = "system"
	}

	result, err := h.uploadUC.Upload(c.Context(), actor, payload)
	if err != nil {
		// Parseo: fatal antes de validar
		if errors.Is(err, domain.ErrMalformedXML) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MALFORMED_XML", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrMissingRootElement) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ROOT", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidIssueDate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ISSUE_DATE", Message: err.Error()})
		}
		// Validación: se reporta el conjunto completo de defectos
		var vErr *cfdi.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
				Code:    "VALIDATION",
				Message: "el comprobante no pasó la validación",
				Errors:  vErr.Violations,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	// Duplicado: caso esperado, no crash
	if result.ExistingUUID != "" {
		return c.Status(fiber.StatusConflict).JSON(result)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetByID obtiene un registro con su bitácora.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	record, err := h.uploadUC.GetRecord(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "comprobante no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(record)
}

// List lista los registros más recientes.
// GET /api/invoices?limit=&offset=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	records, err := h.uploadUC.ListRecords(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(records)
}

// DownloadPDF descarga la representación impresa del comprobante.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	pdfBytes, filename, err := h.pdfUC.DownloadInvoicePDF(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "comprobante no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// readXMLPayload obtiene el XML del multipart (campo "file") o del cuerpo crudo.
func readXMLPayload(c *fiber.Ctx) ([]byte, error) {
	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	return c.Body(), nil
}
