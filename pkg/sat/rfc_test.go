package sat_test

import (
	"testing"

	"github.com/facturamx/facturacion-api/pkg/sat"
	"github.com/stretchr/testify/assert"
)

func TestIsValidRFC_PersonaMoral(t *testing.T) {
	// Persona moral: 3 letras + fecha + homoclave
	assert.True(t, sat.IsValidRFC("EKU9003173C9"), "RFC de persona moral válido")
}

func TestIsValidRFC_PersonaFisica(t *testing.T) {
	// Persona física: 4 letras + fecha + homoclave
	assert.True(t, sat.IsValidRFC("XAXX010101000"), "RFC genérico de público en general")
}

func TestIsValidRFC_MinusculasSeCanonicalizan(t *testing.T) {
	assert.True(t, sat.IsValidRFC("eku9003173c9"), "la entrada en minúsculas debe canonicalizarse")
	assert.True(t, sat.IsValidRFC("  EKU9003173C9  "), "espacios alrededor se ignoran")
}

func TestIsValidRFC_ConEnie(t *testing.T) {
	assert.True(t, sat.IsValidRFC("ÑAB010101AB1"), "la Ñ es válida en la parte alfabética")
	assert.True(t, sat.IsValidRFC("A&B010101AB1"), "el ampersand es válido en la parte alfabética")
}

func TestIsValidRFC_Invalidos(t *testing.T) {
	cases := []string{
		"",
		"EKU900317",     // truncado
		"EKU9003173C99", // homoclave larga
		"12U9003173C9",  // dígitos en la parte alfabética
		"EKUAA03173C9",  // letras en la fecha
		"EKU 9003173C9", // espacio interno
	}
	for _, rfc := range cases {
		assert.False(t, sat.IsValidRFC(rfc), "RFC %q debería ser inválido", rfc)
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, sat.IsValidUUID("5FB2822E-396D-4725-8521-CDC28BDD05CC"))
	assert.True(t, sat.IsValidUUID("5fb2822e-396d-4725-8521-cdc28bdd05cc"), "minúsculas aceptadas")
	assert.False(t, sat.IsValidUUID("5FB2822E396D47258521CDC28BDD05CC"), "sin guiones no es válido")
	assert.False(t, sat.IsValidUUID("5FB2822E-396D-4725-8521"), "truncado")
	assert.False(t, sat.IsValidUUID(""))
	assert.False(t, sat.IsValidUUID("ZZZZZZZZ-396D-4725-8521-CDC28BDD05CC"), "caracteres no hexadecimales")
}
