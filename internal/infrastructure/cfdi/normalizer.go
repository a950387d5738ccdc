// Package cfdi implementa la lectura del XML de un CFDI 4.0: normalización a
// un árbol agnóstico de namespaces y extracción del documento tipado.
//
// El SAT admite comprobantes con prefijo de namespace (cfdi:Comprobante,
// tfd:TimbreFiscalDigital) y exportaciones con nombres de elemento sin
// prefijo. La búsqueda por campo es siempre en dos pasos ordenados: primero
// el nombre con prefijo, después el nombre sin prefijo; ambos resuelven al
// mismo nombre local.
package cfdi

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/facturamx/facturacion-api/internal/domain"
)

// Tree árbol XML normalizado. No conoce el esquema del dominio: solo falla
// ante XML mal formado, nunca por campos ausentes.
type Tree struct {
	doc *etree.Document
}

// Node envuelve un elemento y expone búsquedas por nombre local,
// ignorando el prefijo de namespace del documento de origen.
type Node struct {
	el *etree.Element
}

// Normalize lee el texto XML crudo (no confiable, el caller impone el límite
// de tamaño) y devuelve el árbol. El único error posible es
// domain.ErrMalformedXML: etiquetas sin cerrar, entidades inválidas, vacío.
func Normalize(raw []byte) (*Tree, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedXML, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: documento sin elemento raíz", domain.ErrMalformedXML)
	}
	return &Tree{doc: doc}, nil
}

// Root devuelve la raíz del documento si su nombre local coincide
// (con o sin prefijo), o nil.
func (t *Tree) Root(local string) *Node {
	root := t.doc.Root()
	if root == nil || root.Tag != local {
		return nil
	}
	return &Node{el: root}
}

// Child devuelve el primer hijo directo con ese nombre local
// (prefijado o no), o nil si no existe.
func (n *Node) Child(local string) *Node {
	for _, child := range n.el.ChildElements() {
		if child.Tag == local {
			return &Node{el: child}
		}
	}
	return nil
}

// Children devuelve todos los hijos directos con ese nombre local, en el
// orden del documento. Un elemento único y una lista producen ambos una
// secuencia (de largo 1 o n).
func (n *Node) Children(local string) []*Node {
	var out []*Node
	for _, child := range n.el.ChildElements() {
		if child.Tag == local {
			out = append(out, &Node{el: child})
		}
	}
	return out
}

// Attr devuelve el valor crudo del atributo con ese nombre local y si existe.
// Sin coerción de tipos en esta capa.
func (n *Node) Attr(local string) (string, bool) {
	for _, a := range n.el.Attr {
		if a.Key == local {
			return a.Value, true
		}
	}
	return "", false
}
