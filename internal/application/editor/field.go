package editor

import (
	"github.com/shopspring/decimal"

	"github.com/adelgadoq/mystock-api/internal/domain/stock"
	"github.com/adelgadoq/mystock-api/pkg/apperror"
)

// NumericField holds one numeric input of an order line: the raw value as
// typed, the parsed number used for derived computations, and the validity
// error if any. The raw input and its error are kept even when the value is
// invalid, so the failure persists until the user corrects the field;
// derived displays work from the parsed value, which falls back to zero for
// unparseable input.
type NumericField struct {
	Raw   string
	Value decimal.Decimal
	Err   *apperror.FieldError
}

func newField(name, raw string) NumericField {
	v, ferr := stock.ValidateNonNegative(name, raw)
	return NumericField{Raw: raw, Value: v, Err: ferr}
}

// Valid reports whether the field holds an acceptable value.
func (f NumericField) Valid() bool {
	return f.Err == nil
}

// Int returns the parsed value truncated to an integer.
func (f NumericField) Int() int {
	return int(f.Value.IntPart())
}
