package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/facturamx/facturacion-api/internal/application/ingest"
	"github.com/facturamx/facturacion-api/internal/infrastructure/pdf"
	"github.com/facturamx/facturacion-api/internal/infrastructure/postgres"
	"github.com/facturamx/facturacion-api/internal/infrastructure/storage"
	httpRouter "github.com/facturamx/facturacion-api/internal/interfaces/http"
	"github.com/facturamx/facturacion-api/pkg/config"
	"github.com/facturamx/facturacion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	blobs, err := storage.NewMinIO(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al object storage")
	}

	recordRepo := postgres.NewInvoiceRecordRepository(pool)
	uploadUC := ingest.NewUploadInvoiceUseCase(recordRepo, blobs, log)
	pdfGenerator := pdf.NewMarotoPDFGenerator()
	pdfUC := ingest.NewPDFUseCase(recordRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		// Límite de tamaño del XML subido; el normalizador asume entrada acotada.
		BodyLimit: cfg.HTTP.MaxBodySize,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		UploadUC: uploadUC,
		PDFUC:    pdfUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("API escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
