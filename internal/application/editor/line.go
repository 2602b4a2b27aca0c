package editor

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adelgadoq/mystock-api/internal/domain/catalog"
	"github.com/adelgadoq/mystock-api/internal/domain/entity"
	"github.com/adelgadoq/mystock-api/internal/domain/enum"
	"github.com/adelgadoq/mystock-api/internal/domain/stock"
	"github.com/adelgadoq/mystock-api/pkg/apperror"
)

// Line is one editable row of an order under composition. It holds a
// non-owning reference into the session catalogue plus the stock and price
// snapshot captured when that product was selected; the snapshot is not
// live-updated afterwards.
type Line struct {
	id      int
	session *Session

	product   *entity.Product
	available int

	quantity  NumericField
	unitPrice NumericField
	discount  NumericField // sales orders only

	taxRate    enum.TaxRate // purchase orders only
	taxRateErr *apperror.FieldError

	categoryFilter *uuid.UUID
	options        []entity.Product
}

func newLine(s *Session) *Line {
	l := &Line{
		id:      s.nextLineID(),
		session: s,
		options: catalog.FilterByCategory(s.Catalogue, nil),
	}
	l.resetToDefaults()
	return l
}

// ID returns the line's stable identifier. Identifiers are assigned from the
// session counter and independent of display position.
func (l *Line) ID() int { return l.id }

// Product returns the currently selected product, or nil.
func (l *Line) Product() *entity.Product { return l.product }

// AvailableStock returns the available quantity snapshotted at selection time.
func (l *Line) AvailableStock() int { return l.available }

// Quantity returns the quantity field.
func (l *Line) Quantity() NumericField { return l.quantity }

// UnitPrice returns the unit price field.
func (l *Line) UnitPrice() NumericField { return l.unitPrice }

// LineDiscount returns the line discount field (sales orders).
func (l *Line) LineDiscount() NumericField { return l.discount }

// TaxRate returns the selected tax rate (purchase orders).
func (l *Line) TaxRate() enum.TaxRate { return l.taxRate }

// CategoryFilter returns the category narrowing this line's options, or nil.
func (l *Line) CategoryFilter() *uuid.UUID { return l.categoryFilter }

// Options returns the selectable products under the line's current filter.
func (l *Line) Options() []entity.Product { return l.options }

// FieldErrors returns the line's current validation failures.
func (l *Line) FieldErrors() []apperror.FieldError {
	return l.fieldErrors()
}

func (l *Line) fieldName(suffix string) string {
	return fmt.Sprintf("line_%d_%s", l.id, suffix)
}

// resetToDefaults clears the product selection and restores every field to
// its initial value: quantity 1, unit price 0.00, available stock 0. Used on
// row creation and whenever the category filter changes, since the previous
// selection is no longer guaranteed valid under the new filter.
func (l *Line) resetToDefaults() {
	l.product = nil
	l.available = 0
	l.quantity = newField(l.fieldName("quantity"), "1")
	l.unitPrice = newField(l.fieldName("unit_price"), "0.00")
	l.discount = newField(l.fieldName("discount"), "0.00")
	l.taxRate = enum.DefaultTaxRate
	l.taxRateErr = nil
}

// selectProduct sets the product reference and snapshots its catalogue price
// and available stock. Selecting nil returns the line to the no-selection
// state.
func (l *Line) selectProduct(p *entity.Product) {
	l.product = p
	if p == nil {
		l.unitPrice = newField(l.fieldName("unit_price"), "0.00")
		l.available = 0
		return
	}

	price := p.SalePriceDecimal()
	if l.session.Kind == KindPurchase {
		price = p.PurchasePriceDecimal()
	}
	l.unitPrice = newField(l.fieldName("unit_price"), price.StringFixed(2))
	l.available = stock.Available(p.ActualQuantity, p.ReservedQuantity)
}

// recompute re-derives the line's dependent display values from its current
// state. It runs after every committed mutation so the dependency graph
// (product snapshot -> available stock) stays an explicit step rather than
// implicit event ordering.
func (l *Line) recompute() {
	if l.product == nil {
		l.available = 0
		return
	}
	l.available = stock.Available(l.product.ActualQuantity, l.product.ReservedQuantity)
}

// fieldErrors collects the line's current validation failures for the
// aggregate submission gate.
func (l *Line) fieldErrors() []apperror.FieldError {
	var errs []apperror.FieldError

	if l.product == nil {
		errs = append(errs, *apperror.NewFieldError(l.fieldName("product"),
			apperror.CodeNoProduct, "select a product"))
	}
	if l.quantity.Err != nil {
		errs = append(errs, *l.quantity.Err)
	} else if !l.quantity.Value.IsInteger() || l.quantity.Value.LessThan(decimal.NewFromInt(1)) {
		errs = append(errs, *apperror.NewFieldError(l.fieldName("quantity"),
			apperror.CodeInvalidQuantity, "quantity must be a whole number of at least 1"))
	}
	if l.unitPrice.Err != nil {
		errs = append(errs, *l.unitPrice.Err)
	}
	if l.session.Kind == KindSales && l.discount.Err != nil {
		errs = append(errs, *l.discount.Err)
	}
	if l.session.Kind == KindPurchase && l.taxRateErr != nil {
		errs = append(errs, *l.taxRateErr)
	}
	return errs
}

// record builds the persisted shape of the line. Only meaningful once the
// aggregate validation gate has passed.
func (l *Line) record() LineRecord {
	rec := LineRecord{
		Quantity:  l.quantity.Int(),
		UnitPrice: l.unitPrice.Value.Round(2),
	}
	if l.product != nil {
		rec.ProductID = l.product.ID
	}
	switch l.session.Kind {
	case KindSales:
		d := l.discount.Value.Round(2)
		rec.Discount = &d
	case KindPurchase:
		t := l.taxRate.Percent().Round(2)
		rec.TaxRate = &t
	}
	return rec
}

// LineRecord is the logical record shape handed to the persistence layer for
// one order line.
type LineRecord struct {
	ProductID uuid.UUID        `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	TaxRate   *decimal.Decimal `json:"tax_rate,omitempty"`
	Discount  *decimal.Decimal `json:"discount,omitempty"`
}
