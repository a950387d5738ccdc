// Package cfdi contiene las reglas de dominio de la ingesta de CFDI 4.0:
// validación estructural y de coherencia aritmética del comprobante, y la
// decisión de ingesta (duplicados y estado inicial de vencimiento).
package cfdi

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/facturamx/facturacion-api/internal/domain/entity"
)

// coherenceTolerance tolerancia absoluta (en la unidad menor de la moneda del
// comprobante) entre SubTotal y la suma de importes de los conceptos.
// Constante de política fija, igual que la ventana de vencimiento.
var coherenceTolerance = decimal.RequireFromString("0.01")

// ValidationResult resultado de validar un documento extraído.
// Errors conserva el orden de evaluación de las reglas (estable y
// determinista); Valid es verdadero si y solo si Errors está vacío.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Validate ejecuta todas las reglas estructurales y de coherencia sobre el
// documento, en orden fijo y sin cortocircuito: cada regla aplica aunque una
// anterior haya fallado, para reportar el conjunto completo de defectos en una
// sola pasada. Función pura: mismo documento, mismo resultado; sin I/O ni reloj.
func Validate(doc *entity.Document) ValidationResult {
	var errs []string

	if !strings.HasPrefix(doc.Version, "4") {
		errs = append(errs, "must be CFDI version 4.0 or higher")
	}
	if doc.Issuer.TaxID == "" {
		errs = append(errs, "issuer tax id is required")
	}
	if doc.Recipient.TaxID == "" {
		errs = append(errs, "recipient tax id is required")
	}
	if doc.DigitalStamp.UUID == "" {
		errs = append(errs, "fiscal stamp UUID is required")
	}
	if len(doc.LineItems) == 0 {
		errs = append(errs, "at least one line item is required")
	}
	if !doc.Total.GreaterThan(decimal.Zero) {
		errs = append(errs, "total must be greater than zero")
	}

	// Coherencia: SubTotal contra la suma de importes de los conceptos.
	// También atrapa el caso del parseo permisivo (texto no numérico -> 0.0)
	// cuando produce un resultado inverosímil.
	var sum decimal.Decimal
	for _, item := range doc.LineItems {
		sum = sum.Add(item.Amount)
	}
	diff := doc.Subtotal.Sub(sum).Abs()
	if diff.GreaterThan(coherenceTolerance) {
		errs = append(errs, fmt.Sprintf(
			"subtotal does not match sum of line items (difference: $%s)",
			diff.StringFixed(2),
		))
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidationError error de dominio que transporta el conjunto completo de
// violaciones, para que quien sube el comprobante corrija todos los defectos
// en una sola vuelta.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "comprobante inválido: " + strings.Join(e.Violations, "; ")
}
