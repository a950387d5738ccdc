package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facturamx/facturacion-api/internal/application/ingest"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UploadUC *ingest.UploadInvoiceUseCase
	PDFUC    *ingest.PDFUseCase
}

// Router registra las rutas de la API. Autenticación y sesiones viven en el
// gateway que antecede a este servicio.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.UploadUC, deps.PDFUC)
	invoices.Post("/upload", invoiceHandler.Upload)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
}
