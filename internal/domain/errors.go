package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrInvalidInput = errors.New("entrada inválida")

	// ErrMalformedXML el texto recibido no es XML bien formado; no se produce
	// documento parcial.
	ErrMalformedXML = errors.New("xml mal formado")
	// ErrMissingRootElement XML bien formado pero sin raíz Comprobante
	// (ni con prefijo cfdi: ni sin prefijo).
	ErrMissingRootElement = errors.New("no se encontró el elemento Comprobante")
	// ErrInvalidIssueDate el atributo Fecha está ausente o no es una fecha
	// válida; a diferencia del resto de campos, no admite valor por defecto.
	ErrInvalidIssueDate = errors.New("atributo Fecha ausente o inválido")
)
