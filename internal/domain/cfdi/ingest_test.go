package cfdi_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturamx/facturacion-api/internal/domain/cfdi"
	"github.com/facturamx/facturacion-api/internal/domain/entity"
)

// stubLookup implementación en memoria de cfdi.UUIDLookup.
type stubLookup struct {
	known map[string]bool
	err   error
}

func (s *stubLookup) ExistsByUUID(_ context.Context, uuid string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.known[uuid], nil
}

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func docWithIssueDate(issueDate time.Time) *entity.Document {
	doc := buildValidDocument()
	doc.IssueDate = issueDate
	return doc
}

func TestDecide_AceptaPendiente(t *testing.T) {
	lookup := &stubLookup{known: map[string]bool{}}
	doc := docWithIssueDate(testNow.AddDate(0, 0, -5))

	outcome, err := cfdi.Decide(context.Background(), doc, lookup, testNow)
	require.NoError(t, err)
	assert.Equal(t, cfdi.IngestionAccepted, outcome.Status)
	assert.Equal(t, entity.DueStatePending, outcome.DueState)
}

func TestDecide_RechazaDuplicado(t *testing.T) {
	doc := buildValidDocument()
	lookup := &stubLookup{known: map[string]bool{doc.DigitalStamp.UUID: true}}

	outcome, err := cfdi.Decide(context.Background(), doc, lookup, testNow)
	require.NoError(t, err)
	assert.Equal(t, cfdi.IngestionDuplicateRejected, outcome.Status)
	assert.Equal(t, doc.DigitalStamp.UUID, outcome.ExistingUUID)
	assert.Empty(t, outcome.DueState, "un duplicado no recibe estado de vencimiento")
}

func TestDecide_DuplicadoIgnoraOtrosCampos(t *testing.T) {
	// El rechazo es por UUID aunque el resto del documento difiera del almacenado.
	doc := buildValidDocument()
	doc.Folio = "9999"
	doc.Issuer.TaxID = "AAA010101AAA"
	lookup := &stubLookup{known: map[string]bool{doc.DigitalStamp.UUID: true}}

	outcome, err := cfdi.Decide(context.Background(), doc, lookup, testNow)
	require.NoError(t, err)
	assert.Equal(t, cfdi.IngestionDuplicateRejected, outcome.Status)
}

func TestDecide_FronteraDeVencimiento(t *testing.T) {
	lookup := &stubLookup{known: map[string]bool{}}

	// Exactamente 30 días de antigüedad: sigue pendiente.
	exact := docWithIssueDate(testNow.AddDate(0, 0, -30))
	outcome, err := cfdi.Decide(context.Background(), exact, lookup, testNow)
	require.NoError(t, err)
	assert.Equal(t, entity.DueStatePending, outcome.DueState, "30 días exactos aún es pending")

	// Un día más atrás: vencida.
	over := docWithIssueDate(testNow.AddDate(0, 0, -31))
	outcome, err = cfdi.Decide(context.Background(), over, lookup, testNow)
	require.NoError(t, err)
	assert.Equal(t, entity.DueStateOverdue, outcome.DueState, "31 días es overdue")
}

func TestDecide_ErrorDeLookupSePropaga(t *testing.T) {
	// Falla de infraestructura: jamás se confunde con un duplicado.
	infraErr := errors.New("conexión rechazada")
	lookup := &stubLookup{err: infraErr}

	_, err := cfdi.Decide(context.Background(), buildValidDocument(), lookup, testNow)
	require.Error(t, err)
	assert.ErrorIs(t, err, infraErr)
}
