package stock

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adelgadoq/mystock-api/pkg/apperror"
)

func TestParseNumber(t *testing.T) {
	assert.True(t, decimal.NewFromInt(42).Equal(ParseNumber("42")))
	assert.True(t, decimal.RequireFromString("3.14").Equal(ParseNumber("3.14")))
	assert.True(t, decimal.NewFromInt(-7).Equal(ParseNumber("-7")))
	assert.True(t, decimal.NewFromInt(5).Equal(ParseNumber("  5  ")))
}

func TestParseNumber_UnparseableFallsBackToZero(t *testing.T) {
	assert.True(t, ParseNumber("").IsZero())
	assert.True(t, ParseNumber("abc").IsZero())
	assert.True(t, ParseNumber("12abc").IsZero())
}

func TestValidateNonNegative(t *testing.T) {
	v, ferr := ValidateNonNegative("quantity", "3")
	require.Nil(t, ferr)
	assert.True(t, decimal.NewFromInt(3).Equal(v))

	// Unparseable input parses to zero, which passes.
	v, ferr = ValidateNonNegative("quantity", "nonsense")
	require.Nil(t, ferr)
	assert.True(t, v.IsZero())
}

func TestValidateNonNegative_RejectsNegative(t *testing.T) {
	_, ferr := ValidateNonNegative("unit_price", "-0.01")
	require.NotNil(t, ferr)
	assert.Equal(t, "unit_price", ferr.Field)
	assert.Equal(t, apperror.CodeNegativeValue, ferr.Code)
}

func TestValidateReservedAgainstActual(t *testing.T) {
	assert.Nil(t, ValidateReservedAgainstActual(10, 10))
	assert.Nil(t, ValidateReservedAgainstActual(10, 2))

	ferr := ValidateReservedAgainstActual(10, 11)
	require.NotNil(t, ferr)
	assert.Equal(t, apperror.CodeOverReservation, ferr.Code)
}
