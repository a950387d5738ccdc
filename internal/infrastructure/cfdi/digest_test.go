package cfdi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infracfdi "github.com/facturamx/facturacion-api/internal/infrastructure/cfdi"
)

func TestCanonicalDigest_InvarianteDeSerializacion(t *testing.T) {
	// Orden de atributos y tag autocerrado vs. explícito: misma forma canónica.
	a, err := infracfdi.CanonicalDigest([]byte(`<Comprobante Version="4.0" Moneda="MXN"/>`))
	require.NoError(t, err)
	b, err := infracfdi.CanonicalDigest([]byte(`<Comprobante Moneda="MXN" Version="4.0"></Comprobante>`))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64, "SHA-256 en hexadecimal")
}

func TestCanonicalDigest_ContenidoDistintoHuellaDistinta(t *testing.T) {
	a, err := infracfdi.CanonicalDigest([]byte(`<Comprobante Total="1160.00"/>`))
	require.NoError(t, err)
	b, err := infracfdi.CanonicalDigest([]byte(`<Comprobante Total="1160.01"/>`))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCanonicalDigest_XMLMalFormado(t *testing.T) {
	_, err := infracfdi.CanonicalDigest([]byte(`<Comprobante`))
	assert.Error(t, err)
}
