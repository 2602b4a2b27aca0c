package stock

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/adelgadoq/mystock-api/pkg/apperror"
)

// ParseNumber parses a raw form value as a decimal number. Anything that
// fails to parse (including the empty string) is treated as zero. This
// mirrors the permissive input handling used across the product forms; it is
// intentional leniency, not silent data loss, because the caller keeps the
// raw value and its validity flag alongside the parsed number.
func ParseNumber(raw string) decimal.Decimal {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return v
}

// ValidateNonNegative parses raw and fails when the parsed value is below
// zero. On success the parsed value is returned with a nil error.
func ValidateNonNegative(field, raw string) (decimal.Decimal, *apperror.FieldError) {
	v := ParseNumber(raw)
	if v.IsNegative() {
		return v, apperror.NewFieldError(field, apperror.CodeNegativeValue, field+" cannot be negative")
	}
	return v, nil
}

// ValidateReservedAgainstActual fails when more stock is reserved than held.
// The condition is flagged, never prevented: source data may already violate
// it and the editor must surface that rather than assume it cannot happen.
func ValidateReservedAgainstActual(actual, reserved int) *apperror.FieldError {
	if IsOverReserved(actual, reserved) {
		return apperror.NewFieldError("reserved_quantity", apperror.CodeOverReservation,
			"reserved quantity cannot exceed the actual quantity")
	}
	return nil
}
