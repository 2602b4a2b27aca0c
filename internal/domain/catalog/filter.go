// Package catalog filters the selectable product list offered on an order
// line. Filtering is never destructive: the full catalogue is retained by
// the caller and every call derives a fresh slice from its input.
package catalog

import (
	"github.com/google/uuid"

	"github.com/adelgadoq/mystock-api/internal/domain/entity"
)

// FilterByCategory returns the products matching the given category,
// preserving the original relative order. A nil category means no filter
// and returns all products. A product without a category only appears under
// no filter; it never matches a concrete category.
func FilterByCategory(products []entity.Product, categoryID *uuid.UUID) []entity.Product {
	if categoryID == nil {
		out := make([]entity.Product, len(products))
		copy(out, products)
		return out
	}

	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if p.CategoryID != nil && *p.CategoryID == *categoryID {
			out = append(out, p)
		}
	}
	return out
}
