// Package pricing derives profit margins from purchase/sale price pairs.
package pricing

import "github.com/shopspring/decimal"

// Sign classifies a margin for presentation purposes.
type Sign int

const (
	SignNeutral  Sign = 0
	SignPositive Sign = 1
	SignNegative Sign = 2
)

func (s Sign) String() string {
	switch s {
	case SignPositive:
		return "positive"
	case SignNegative:
		return "negative"
	}
	return "neutral"
}

// Margin is the result of a margin computation. Euros and Percentage are
// rounded to two decimal places; the computation itself keeps full precision
// until that final step so repeated edits do not compound rounding error.
//
// Undefined marks the neutral result returned when either price input is not
// strictly positive. Callers must distinguish it from a computed zero margin.
type Margin struct {
	Euros      decimal.Decimal `json:"euros"`
	Percentage decimal.Decimal `json:"percentage"`
	Sign       Sign            `json:"sign"`
	Undefined  bool            `json:"undefined"`
}

// ComputeMargin derives the absolute and percentage margin between a
// purchase price and a sale price. The margin is only computed when both
// inputs are strictly positive; otherwise the undefined neutral result is
// returned with zero euros and zero percent.
func ComputeMargin(purchasePrice, salePrice decimal.Decimal) Margin {
	if !purchasePrice.IsPositive() || !salePrice.IsPositive() {
		return Margin{
			Euros:      decimal.Zero.Round(2),
			Percentage: decimal.Zero.Round(2),
			Sign:       SignNeutral,
			Undefined:  true,
		}
	}

	euros := salePrice.Sub(purchasePrice)

	percentage := decimal.Zero
	if !purchasePrice.IsZero() {
		percentage = euros.Div(purchasePrice).Mul(decimal.NewFromInt(100))
	}

	sign := SignNeutral
	switch {
	case euros.IsPositive():
		sign = SignPositive
	case euros.IsNegative():
		sign = SignNegative
	}

	return Margin{
		Euros:      euros.Round(2),
		Percentage: percentage.Round(2),
		Sign:       sign,
	}
}
