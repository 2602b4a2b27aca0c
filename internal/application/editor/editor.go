package editor

import (
	"github.com/google/uuid"

	"github.com/adelgadoq/mystock-api/internal/domain/catalog"
	"github.com/adelgadoq/mystock-api/internal/domain/enum"
	"github.com/adelgadoq/mystock-api/pkg/apperror"
)

// Editor manages the ordered collection of lines for one order under
// composition. It always holds at least one line: the last line can never be
// removed, only reset. All mutations run synchronously on the caller's
// goroutine and end with an explicit recompute of the affected line's
// dependent displays.
type Editor struct {
	session *Session
	lines   []*Line
}

func newEditor(s *Session) *Editor {
	e := &Editor{session: s}
	e.lines = []*Line{newLine(s)}
	return e
}

// Lines returns the lines in insertion order.
func (e *Editor) Lines() []*Line {
	return e.lines
}

// Len returns the current number of lines.
func (e *Editor) Len() int {
	return len(e.lines)
}

// RemoveButtonsVisible reports whether per-line remove controls should be
// shown: only when more than one line remains.
func (e *Editor) RemoveButtonsVisible() bool {
	return len(e.lines) > 1
}

// Line returns the line with the given stable identifier.
func (e *Editor) Line(id int) (*Line, error) {
	for _, l := range e.lines {
		if l.id == id {
			return l, nil
		}
	}
	return nil, apperror.ErrLineNotFound
}

// AddLine appends a new line wired against the full catalogue with no
// category filter. It always succeeds; there is no upper bound on line count.
func (e *Editor) AddLine() *Line {
	l := newLine(e.session)
	e.lines = append(e.lines, l)
	return l
}

// RemoveLine removes the identified line. Removing the sole remaining line
// fails with ErrLastLineProtected; the order must keep at least one row.
func (e *Editor) RemoveLine(id int) error {
	if !CanRemoveLine(len(e.lines)) {
		return apperror.ErrLastLineProtected
	}
	for i, l := range e.lines {
		if l.id == id {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			return nil
		}
	}
	return apperror.ErrLineNotFound
}

// SelectProduct sets a line's product. A nil productID clears the selection.
// The product must be selectable under the line's current category filter.
func (e *Editor) SelectProduct(lineID int, productID *uuid.UUID) error {
	l, err := e.Line(lineID)
	if err != nil {
		return err
	}
	if productID == nil {
		l.selectProduct(nil)
		return nil
	}
	for i := range l.options {
		if l.options[i].ID == *productID {
			l.selectProduct(&l.options[i])
			return nil
		}
	}
	return apperror.NewNotFoundError("Product")
}

// SetQuantity commits a raw quantity input. An invalid value is flagged on
// the field, never silently coerced in the stored state, and the session
// stays interactive.
func (e *Editor) SetQuantity(lineID int, raw string) error {
	l, err := e.Line(lineID)
	if err != nil {
		return err
	}
	l.quantity = newField(l.fieldName("quantity"), raw)
	l.recompute()
	return nil
}

// SetUnitPrice commits a raw unit price input.
func (e *Editor) SetUnitPrice(lineID int, raw string) error {
	l, err := e.Line(lineID)
	if err != nil {
		return err
	}
	l.unitPrice = newField(l.fieldName("unit_price"), raw)
	l.recompute()
	return nil
}

// SetLineDiscount commits a raw line discount input. Discounts only apply to
// sales orders.
func (e *Editor) SetLineDiscount(lineID int, raw string) error {
	if e.session.Kind != KindSales {
		return apperror.NewBadRequestError("Line discounts apply to sales orders only")
	}
	l, err := e.Line(lineID)
	if err != nil {
		return err
	}
	l.discount = newField(l.fieldName("discount"), raw)
	l.recompute()
	return nil
}

// SetTaxRate commits a tax rate selection. Tax rates only apply to purchase
// orders; a rate outside the enumerated set is flagged on the line.
func (e *Editor) SetTaxRate(lineID int, rate enum.TaxRate) error {
	if e.session.Kind != KindPurchase {
		return apperror.NewBadRequestError("Tax rates apply to purchase orders only")
	}
	l, err := e.Line(lineID)
	if err != nil {
		return err
	}
	l.taxRate = rate
	l.taxRateErr = nil
	if !rate.Valid() {
		l.taxRateErr = apperror.NewFieldError(l.fieldName("tax_rate"),
			apperror.CodeInvalidTaxRate, "tax rate must be one of the enumerated IGIC rates")
	}
	l.recompute()
	return nil
}

// ApplyCategoryFilter re-derives a line's selectable options and resets the
// line to its defaults. The reset is deliberate and unconditional: the
// previous selection may no longer be in scope under the new filter, and no
// attempt is made to check whether it still is.
func (e *Editor) ApplyCategoryFilter(lineID int, category *uuid.UUID) error {
	l, err := e.Line(lineID)
	if err != nil {
		return err
	}
	l.categoryFilter = category
	l.options = catalog.FilterByCategory(e.session.Catalogue, category)
	l.resetToDefaults()
	return nil
}

// Validate is the aggregate submission gate: it reports whether the whole
// line collection is fit to hand to the transport layer, along with every
// per-field failure. It never aborts; the caller re-renders current state.
func (e *Editor) Validate() (bool, []apperror.FieldError) {
	var errs []apperror.FieldError
	for _, l := range e.lines {
		errs = append(errs, l.fieldErrors()...)
	}
	return len(errs) == 0, errs
}

// Records returns the persisted shape of every line, in insertion order.
// Callers must have passed Validate first.
func (e *Editor) Records() []LineRecord {
	recs := make([]LineRecord, 0, len(e.lines))
	for _, l := range e.lines {
		recs = append(recs, l.record())
	}
	return recs
}
