// Package storage abstrae el object storage donde se conserva el XML original
// de cada comprobante ingresado. El núcleo de ingesta no sabe si detrás hay
// MinIO, S3 u otro backend compatible: solo entrega bytes y recibe una llave
// recuperable.
package storage

import "context"

// BlobStore puerto del almacenamiento de archivos XML.
type BlobStore interface {
	// Put guarda el payload bajo la llave dada y la deja lista para lectura.
	Put(ctx context.Context, key string, payload []byte, contentType string) error
	// Get recupera el contenido completo por llave.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete elimina el objeto por llave.
	Delete(ctx context.Context, key string) error
}
