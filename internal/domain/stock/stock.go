// Package stock holds the pure arithmetic and field validation rules behind
// the product stock displays: available quantity, low-stock and
// over-reservation conditions.
package stock

// Available returns actual minus reserved. The result is never clamped: a
// negative value is a valid output signalling an over-reservation that must
// be displayed, not hidden.
func Available(actual, reserved int) int {
	return actual - reserved
}

// IsLowOrOutOfStock reports whether the actual quantity has fallen to or
// below the minimum-stock threshold.
func IsLowOrOutOfStock(actual, minimum int) bool {
	return actual <= minimum
}

// IsOverReserved reports whether more stock is reserved than physically held.
func IsOverReserved(actual, reserved int) bool {
	return reserved > actual
}
