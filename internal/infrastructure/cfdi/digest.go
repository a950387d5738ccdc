package cfdi

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"

	"github.com/ucarion/c14n"
)

// CanonicalDigest calcula el SHA-256 hexadecimal de la forma canónica (C14N)
// del XML. Se guarda en el registro como huella de integridad del archivo
// subido: dos serializaciones del mismo comprobante (orden de atributos,
// comillas, tags autocerrados) comparten huella. No participa en la detección
// de duplicados, que es solo por UUID del timbre.
func CanonicalDigest(raw []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	canonical, err := c14n.Canonicalize(decoder)
	if err != nil {
		return "", fmt.Errorf("canonicalizar XML: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
