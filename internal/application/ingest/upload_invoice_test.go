package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturamx/facturacion-api/internal/domain"
	domaincfdi "github.com/facturamx/facturacion-api/internal/domain/cfdi"
	"github.com/facturamx/facturacion-api/internal/domain/entity"
	"github.com/facturamx/facturacion-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeRepo repositorio en memoria indexado por UUID del timbre.
type fakeRepo struct {
	known     map[string]bool // UUIDs ya registrados (respuesta de ExistsByUUID)
	createErr error           // error a devolver en Create
	created   []*entity.InvoiceRecord
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{known: map[string]bool{}}
}

func (r *fakeRepo) Create(_ context.Context, record *entity.InvoiceRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	if r.known[record.Document.DigitalStamp.UUID] {
		return domain.ErrDuplicate
	}
	r.known[record.Document.DigitalStamp.UUID] = true
	r.created = append(r.created, record)
	return nil
}

func (r *fakeRepo) ExistsByUUID(_ context.Context, uuid string) (bool, error) {
	return r.known[uuid], nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*entity.InvoiceRecord, error) {
	for _, rec := range r.created {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) List(_ context.Context, _, _ int) ([]*entity.InvoiceRecord, error) {
	return r.created, nil
}

// fakeBlobStore guarda los objetos en un mapa.
type fakeBlobStore struct {
	objects map[string][]byte
	putErr  error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (s *fakeBlobStore) Put(_ context.Context, key string, payload []byte, _ string) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.objects[key] = payload
	return nil
}

func (s *fakeBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	payload, ok := s.objects[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return payload, nil
}

func (s *fakeBlobStore) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

const testUUID = "5FB2822E-396D-4725-8521-CDC28BDD05CC"

// comprobanteValido CFDI 4.0 mínimo que pasa la validación completa:
// conceptos suman el SubTotal y el Total incluye IVA trasladado.
const comprobanteValido = `<?xml version="1.0" encoding="UTF-8"?>
<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4" Version="4.0" Serie="A" Folio="1001"
	Fecha="2026-08-30T12:00:00" Moneda="MXN" SubTotal="1000.00" Total="1160.00" TipoDeComprobante="I">
	<cfdi:Emisor Rfc="EKU9003173C9" Nombre="ESCUELA KEMPER URGATE" RegimenFiscal="601"/>
	<cfdi:Receptor Rfc="XAXX010101000" Nombre="PUBLICO EN GENERAL" UsoCFDI="G03"/>
	<cfdi:Conceptos>
		<cfdi:Concepto ClaveProdServ="80141600" Cantidad="1" ClaveUnidad="E48"
			Descripcion="Servicio de consultoria" ValorUnitario="1000.00" Importe="1000.00"/>
	</cfdi:Conceptos>
	<cfdi:Impuestos TotalImpuestosTrasladados="160.00">
		<cfdi:Traslados>
			<cfdi:Traslado Base="1000.00" Impuesto="002" TipoFactor="Tasa" TasaOCuota="0.160000" Importe="160.00"/>
		</cfdi:Traslados>
	</cfdi:Impuestos>
	<cfdi:Complemento>
		<tfd:TimbreFiscalDigital xmlns:tfd="http://www.sat.gob.mx/TimbreFiscalDigital"
			Version="1.1" UUID="` + testUUID + `" FechaTimbrado="2026-08-30T12:05:00"/>
	</cfdi:Complemento>
</cfdi:Comprobante>`

func buildUseCase(repo *fakeRepo, blobs *fakeBlobStore) *UploadInvoiceUseCase {
	uc := NewUploadInvoiceUseCase(repo, blobs, logger.New(logger.Config{Level: "error"}))
	uc.now = func() time.Time { return fixedNow }
	return uc
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Upload
// ──────────────────────────────────────────────────────────────────────────────

func TestUpload_IngresaComprobanteValido(t *testing.T) {
	repo := newFakeRepo()
	blobs := newFakeBlobStore()
	uc := buildUseCase(repo, blobs)

	result, err := uc.Upload(context.Background(), "Ana", []byte(comprobanteValido))
	require.NoError(t, err)

	assert.Equal(t, string(domaincfdi.IngestionAccepted), result.Status)
	assert.Equal(t, entity.DueStatePending, result.DueState,
		"emitida hoy mismo debe quedar pending")
	require.NotNil(t, result.Record)
	assert.Equal(t, testUUID, result.Record.UUID)
	assert.Equal(t, "A1001", result.Record.Number)

	// El XML original queda en el blob store bajo la llave del UUID.
	require.Len(t, repo.created, 1)
	record := repo.created[0]
	assert.Equal(t, "cfdi/"+testUUID+".xml", record.XMLObjectKey)
	stored, err := blobs.Get(context.Background(), record.XMLObjectKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(comprobanteValido), stored, "se conserva el XML tal cual se recibió")
	assert.Len(t, record.ContentDigest, 64)

	// Exactamente una entrada de bitácora: la de creación.
	require.Len(t, record.AuditTrail, 1)
	entry := record.AuditTrail[0]
	assert.Equal(t, entity.AuditActionCreated, entry.ActionLabel)
	assert.Equal(t, "Ana", entry.ActorName)
	assert.Equal(t, "Invoice created from XML upload", entry.Detail)
	assert.Equal(t, fixedNow, entry.Timestamp)
}

func TestUpload_XMLMalFormado(t *testing.T) {
	uc := buildUseCase(newFakeRepo(), newFakeBlobStore())

	_, err := uc.Upload(context.Background(), "Ana", []byte(`<cfdi:Comprobante`))
	assert.ErrorIs(t, err, domain.ErrMalformedXML)
}

func TestUpload_ValidacionDevuelveTodasLasViolaciones(t *testing.T) {
	repo := newFakeRepo()
	uc := buildUseCase(repo, newFakeBlobStore())

	// Bien formado pero vacío de datos fiscales: fallan todas las reglas.
	_, err := uc.Upload(context.Background(), "Ana",
		[]byte(`<Comprobante Version="3.3" Fecha="2026-08-30T12:00:00"/>`))
	require.Error(t, err)

	var vErr *domaincfdi.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{
		"must be CFDI version 4.0 or higher",
		"issuer tax id is required",
		"recipient tax id is required",
		"fiscal stamp UUID is required",
		"at least one line item is required",
		"total must be greater than zero",
	}, vErr.Violations, "se reportan todas las violaciones, no solo la primera")

	assert.Empty(t, repo.created, "un comprobante inválido no se persiste")
}

func TestUpload_DuplicadoPorConsulta(t *testing.T) {
	repo := newFakeRepo()
	repo.known[testUUID] = true
	blobs := newFakeBlobStore()
	uc := buildUseCase(repo, blobs)

	result, err := uc.Upload(context.Background(), "Ana", []byte(comprobanteValido))
	require.NoError(t, err, "un duplicado es resultado, no error")

	assert.Equal(t, string(domaincfdi.IngestionDuplicateRejected), result.Status)
	assert.Equal(t, testUUID, result.ExistingUUID)
	assert.Nil(t, result.Record)
	assert.Empty(t, blobs.objects, "un duplicado no escribe en el blob store")
}

func TestUpload_DuplicadoPorConstraintAlInsertar(t *testing.T) {
	// Carrera: la consulta no lo vio pero el insert choca con la constraint.
	repo := newFakeRepo()
	repo.createErr = domain.ErrDuplicate
	uc := buildUseCase(repo, newFakeBlobStore())

	result, err := uc.Upload(context.Background(), "Ana", []byte(comprobanteValido))
	require.NoError(t, err)
	assert.Equal(t, string(domaincfdi.IngestionDuplicateRejected), result.Status)
	assert.Equal(t, testUUID, result.ExistingUUID)
}

func TestUpload_FallaDeStorageSePropaga(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.putErr = errors.New("bucket no disponible")
	repo := newFakeRepo()
	uc := buildUseCase(repo, blobs)

	_, err := uc.Upload(context.Background(), "Ana", []byte(comprobanteValido))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "guardar XML original")
	assert.Empty(t, repo.created, "si el XML no se guardó, el registro no se persiste")
}

func TestUpload_ReenvioTrasRechazoDeValidacion(t *testing.T) {
	// El mismo comprobante corregido debe poder reenviarse y quedar aceptado.
	repo := newFakeRepo()
	uc := buildUseCase(repo, newFakeBlobStore())

	_, err := uc.Upload(context.Background(), "Ana",
		[]byte(`<Comprobante Version="3.3" Fecha="2026-08-30T12:00:00"/>`))
	require.Error(t, err)

	result, err := uc.Upload(context.Background(), "Ana", []byte(comprobanteValido))
	require.NoError(t, err)
	assert.Equal(t, string(domaincfdi.IngestionAccepted), result.Status)
}

func TestGetRecord_IDVacio(t *testing.T) {
	uc := buildUseCase(newFakeRepo(), newFakeBlobStore())
	_, err := uc.GetRecord(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetRecord_NoEncontrado(t *testing.T) {
	uc := buildUseCase(newFakeRepo(), newFakeBlobStore())
	_, err := uc.GetRecord(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
