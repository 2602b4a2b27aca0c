package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeMargin_Positive(t *testing.T) {
	m := ComputeMargin(d("10"), d("15"))

	assert.False(t, m.Undefined)
	assert.Equal(t, "5.00", m.Euros.StringFixed(2))
	assert.Equal(t, "50.00", m.Percentage.StringFixed(2))
	assert.Equal(t, SignPositive, m.Sign)
}

func TestComputeMargin_Negative(t *testing.T) {
	m := ComputeMargin(d("15"), d("10"))

	assert.False(t, m.Undefined)
	assert.Equal(t, "-5.00", m.Euros.StringFixed(2))
	assert.Equal(t, "-33.33", m.Percentage.StringFixed(2))
	assert.Equal(t, SignNegative, m.Sign)
}

func TestComputeMargin_EqualPricesAreNeutral(t *testing.T) {
	m := ComputeMargin(d("20"), d("20"))

	assert.False(t, m.Undefined)
	assert.True(t, m.Euros.IsZero())
	assert.True(t, m.Percentage.IsZero())
	assert.Equal(t, SignNeutral, m.Sign)
}

func TestComputeMargin_UndefinedWhenNotStrictlyPositive(t *testing.T) {
	for _, tc := range []struct {
		name     string
		purchase string
		sale     string
	}{
		{"zero purchase", "0", "15"},
		{"zero sale", "10", "0"},
		{"both zero", "0", "0"},
		{"negative purchase", "-1", "15"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := ComputeMargin(d(tc.purchase), d(tc.sale))

			assert.True(t, m.Undefined)
			assert.True(t, m.Euros.IsZero())
			assert.True(t, m.Percentage.IsZero())
			assert.Equal(t, SignNeutral, m.Sign)
		})
	}
}

func TestComputeMargin_RoundsToTwoPlaces(t *testing.T) {
	m := ComputeMargin(d("3"), d("4"))

	assert.Equal(t, "1.00", m.Euros.StringFixed(2))
	assert.Equal(t, "33.33", m.Percentage.StringFixed(2))
}

func TestComputeMargin_SignFromUnroundedValue(t *testing.T) {
	// A margin under half a cent still counts as positive.
	m := ComputeMargin(d("10.000"), d("10.001"))

	assert.Equal(t, SignPositive, m.Sign)
	assert.Equal(t, "0.00", m.Euros.StringFixed(2))
}

func TestSignString(t *testing.T) {
	assert.Equal(t, "positive", SignPositive.String())
	assert.Equal(t, "negative", SignNegative.String())
	assert.Equal(t, "neutral", SignNeutral.String())
}
