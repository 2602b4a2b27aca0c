// Package editor implements the editable line-item list used while a sales
// or purchase order is being composed: product selection with stock and
// price snapshots, per-line category filtering, add/remove with a
// minimum-of-one-line invariant, and the validation gate consulted before an
// order form is handed to the transport layer.
package editor

import (
	"github.com/google/uuid"

	"github.com/adelgadoq/mystock-api/internal/domain/entity"
)

// OrderKind distinguishes sales orders from supplier purchase orders. The
// kind decides which catalogue price a product selection snapshots and which
// per-line fields apply (discount for sales, tax rate for purchases).
type OrderKind int

const (
	KindSales OrderKind = iota
	KindPurchase
)

func (k OrderKind) String() string {
	if k == KindPurchase {
		return "purchase"
	}
	return "sales"
}

// Session owns everything shared by the lines of one order under
// composition: the catalogue snapshot, the category list and the line-ID
// counter. Catalogue and categories are read-only once supplied; only the
// editor's own line collection mutates, and a session is never shared
// across editing flows.
type Session struct {
	ID         uuid.UUID
	Kind       OrderKind
	Catalogue  []entity.Product
	Categories []entity.Category
	Editor     *Editor

	lineCounter int
}

// NewSession creates an editing session over the supplied catalogue and
// opens its editor with a single empty line.
func NewSession(kind OrderKind, catalogue []entity.Product, categories []entity.Category) *Session {
	s := &Session{
		ID:         uuid.New(),
		Kind:       kind,
		Catalogue:  catalogue,
		Categories: categories,
	}
	s.Editor = newEditor(s)
	return s
}

// nextLineID hands out stable line identifiers. The counter only increases,
// so an identifier is never reused within a session even after removals.
func (s *Session) nextLineID() int {
	s.lineCounter++
	return s.lineCounter
}

// findProduct resolves a product from the full catalogue snapshot.
func (s *Session) findProduct(id uuid.UUID) *entity.Product {
	for i := range s.Catalogue {
		if s.Catalogue[i].ID == id {
			return &s.Catalogue[i]
		}
	}
	return nil
}
