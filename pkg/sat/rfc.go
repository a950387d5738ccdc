package sat

import (
	"regexp"
	"strings"
)

// rfcPattern estructura del RFC (Registro Federal de Contribuyentes):
// 3 o 4 letras mayúsculas (incluye Ñ y &), 6 dígitos de fecha y 3 caracteres
// de homoclave alfanuméricos. Aplica tanto a personas físicas como morales.
var rfcPattern = regexp.MustCompile(`^[A-ZÑ&]{3,4}[0-9]{6}[A-Z0-9]{3}$`)

// uuidPattern folio fiscal (UUID) en agrupación estándar 8-4-4-4-12 hexadecimal.
var uuidPattern = regexp.MustCompile(`^[0-9A-F]{8}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{12}$`)

// IsValidRFC valida el formato del RFC. La entrada se canonicaliza a mayúsculas;
// no verifica existencia en el padrón del SAT.
func IsValidRFC(rfc string) bool {
	return rfcPattern.MatchString(strings.ToUpper(strings.TrimSpace(rfc)))
}

// IsValidUUID valida el formato del folio fiscal (UUID del Timbre Fiscal Digital).
// Acepta mayúsculas y minúsculas; no consulta el estado del folio ante el SAT.
func IsValidUUID(uuid string) bool {
	return uuidPattern.MatchString(strings.ToUpper(strings.TrimSpace(uuid)))
}
