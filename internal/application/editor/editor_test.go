package editor

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adelgadoq/mystock-api/internal/domain/entity"
	"github.com/adelgadoq/mystock-api/internal/domain/enum"
	"github.com/adelgadoq/mystock-api/pkg/apperror"
)

func testSession(kind OrderKind) (*Session, []entity.Product, uuid.UUID) {
	catA := uuid.New()
	catB := uuid.New()
	products := []entity.Product{
		{
			ID: uuid.New(), Name: "Cable", CategoryID: &catA,
			ActualQuantity: 10, ReservedQuantity: 3,
			PurchasePrice: 250, SalePrice: 400,
		},
		{
			ID: uuid.New(), Name: "Switch", CategoryID: &catB,
			ActualQuantity: 2, ReservedQuantity: 5,
			PurchasePrice: 8000, SalePrice: 12000,
		},
		{
			ID: uuid.New(), Name: "Misc", CategoryID: nil,
			ActualQuantity: 1, ReservedQuantity: 0,
			PurchasePrice: 100, SalePrice: 150,
		},
	}
	categories := []entity.Category{
		{ID: catA, Name: "Cabling"},
		{ID: catB, Name: "Networking"},
	}
	return NewSession(kind, products, categories), products, catA
}

func TestNewSession_StartsWithOneLine(t *testing.T) {
	s, _, _ := testSession(KindSales)

	require.Equal(t, 1, s.Editor.Len())
	assert.False(t, s.Editor.RemoveButtonsVisible())

	line := s.Editor.Lines()[0]
	assert.Nil(t, line.Product())
	assert.Equal(t, "1", line.Quantity().Raw)
	assert.Equal(t, "0.00", line.UnitPrice().Raw)
	assert.Equal(t, 0, line.AvailableStock())
	assert.Len(t, line.Options(), 3)
}

func TestAddLine_MakesRemoveButtonsVisible(t *testing.T) {
	s, _, _ := testSession(KindSales)

	s.Editor.AddLine()

	assert.Equal(t, 2, s.Editor.Len())
	assert.True(t, s.Editor.RemoveButtonsVisible())
}

func TestRemoveLine_LastLineProtected(t *testing.T) {
	s, _, _ := testSession(KindSales)
	only := s.Editor.Lines()[0].ID()

	err := s.Editor.RemoveLine(only)

	assert.ErrorIs(t, err, apperror.ErrLastLineProtected)
	assert.Equal(t, 1, s.Editor.Len())
}

func TestRemoveLine_RemovesIdentifiedLine(t *testing.T) {
	s, _, _ := testSession(KindSales)
	first := s.Editor.Lines()[0].ID()
	s.Editor.AddLine()

	require.NoError(t, s.Editor.RemoveLine(first))

	require.Equal(t, 1, s.Editor.Len())
	assert.NotEqual(t, first, s.Editor.Lines()[0].ID())
	assert.False(t, s.Editor.RemoveButtonsVisible())
}

func TestLineIDs_MonotonicNeverReused(t *testing.T) {
	s, _, _ := testSession(KindSales)
	first := s.Editor.Lines()[0].ID()
	second := s.Editor.AddLine().ID()

	require.NoError(t, s.Editor.RemoveLine(second))
	third := s.Editor.AddLine().ID()

	assert.Greater(t, second, first)
	assert.Greater(t, third, second)
}

func TestSelectProduct_SalesSnapshotsSalePriceAndStock(t *testing.T) {
	s, products, _ := testSession(KindSales)
	line := s.Editor.Lines()[0]

	require.NoError(t, s.Editor.SelectProduct(line.ID(), &products[0].ID))

	assert.Equal(t, "4.00", line.UnitPrice().Raw)
	assert.Equal(t, 7, line.AvailableStock())
}

func TestSelectProduct_PurchaseSnapshotsPurchasePrice(t *testing.T) {
	s, products, _ := testSession(KindPurchase)
	line := s.Editor.Lines()[0]

	require.NoError(t, s.Editor.SelectProduct(line.ID(), &products[0].ID))

	assert.Equal(t, "2.50", line.UnitPrice().Raw)
}

func TestSelectProduct_OverReservedShowsNegativeStock(t *testing.T) {
	s, products, _ := testSession(KindSales)
	line := s.Editor.Lines()[0]

	require.NoError(t, s.Editor.SelectProduct(line.ID(), &products[1].ID))

	assert.Equal(t, -3, line.AvailableStock())
}

func TestSelectProduct_NilClearsSelection(t *testing.T) {
	s, products, _ := testSession(KindSales)
	line := s.Editor.Lines()[0]
	require.NoError(t, s.Editor.SelectProduct(line.ID(), &products[0].ID))

	require.NoError(t, s.Editor.SelectProduct(line.ID(), nil))

	assert.Nil(t, line.Product())
	assert.Equal(t, "0.00", line.UnitPrice().Raw)
	assert.Equal(t, 0, line.AvailableStock())
}

func TestSelectProduct_OutsideFilterRejected(t *testing.T) {
	s, products, catA := testSession(KindSales)
	line := s.Editor.Lines()[0]
	require.NoError(t, s.Editor.ApplyCategoryFilter(line.ID(), &catA))

	// Switch belongs to another category, so it is not selectable.
	err := s.Editor.SelectProduct(line.ID(), &products[1].ID)

	require.Error(t, err)
	assert.Nil(t, line.Product())
}

func TestSetQuantity_InvalidValueFlaggedNotCoerced(t *testing.T) {
	s, _, _ := testSession(KindSales)
	line := s.Editor.Lines()[0]

	require.NoError(t, s.Editor.SetQuantity(line.ID(), "-4"))

	assert.Equal(t, "-4", line.Quantity().Raw)
	require.NotNil(t, line.Quantity().Err)
	assert.Equal(t, apperror.CodeNegativeValue, line.Quantity().Err.Code)

	// The session stays interactive; a correction clears the error.
	require.NoError(t, s.Editor.SetQuantity(line.ID(), "4"))
	assert.True(t, line.Quantity().Valid())
	assert.Equal(t, 4, line.Quantity().Int())
}

func TestSetLineDiscount_SalesOnly(t *testing.T) {
	purchase, _, _ := testSession(KindPurchase)
	err := purchase.Editor.SetLineDiscount(purchase.Editor.Lines()[0].ID(), "1.00")
	require.Error(t, err)

	sales, _, _ := testSession(KindSales)
	require.NoError(t, sales.Editor.SetLineDiscount(sales.Editor.Lines()[0].ID(), "1.00"))
}

func TestSetTaxRate_PurchaseOnly(t *testing.T) {
	sales, _, _ := testSession(KindSales)
	err := sales.Editor.SetTaxRate(sales.Editor.Lines()[0].ID(), enum.TaxRateReduced)
	require.Error(t, err)

	purchase, _, _ := testSession(KindPurchase)
	line := purchase.Editor.Lines()[0]
	require.NoError(t, purchase.Editor.SetTaxRate(line.ID(), enum.TaxRateReduced))
	assert.Equal(t, enum.TaxRateReduced, line.TaxRate())
}

func TestSetTaxRate_InvalidRateFlagged(t *testing.T) {
	s, products, _ := testSession(KindPurchase)
	line := s.Editor.Lines()[0]
	require.NoError(t, s.Editor.SelectProduct(line.ID(), &products[0].ID))

	require.NoError(t, s.Editor.SetTaxRate(line.ID(), enum.TaxRate(5)))

	valid, errs := s.Editor.Validate()
	assert.False(t, valid)
	require.Len(t, errs, 1)
	assert.Equal(t, apperror.CodeInvalidTaxRate, errs[0].Code)
}

func TestApplyCategoryFilter_NarrowsOptionsAndResetsLine(t *testing.T) {
	s, products, catA := testSession(KindSales)
	line := s.Editor.Lines()[0]
	require.NoError(t, s.Editor.SelectProduct(line.ID(), &products[0].ID))
	require.NoError(t, s.Editor.SetQuantity(line.ID(), "9"))

	require.NoError(t, s.Editor.ApplyCategoryFilter(line.ID(), &catA))

	// The reset is unconditional, even though Cable matched the new filter.
	assert.Nil(t, line.Product())
	assert.Equal(t, "1", line.Quantity().Raw)
	assert.Equal(t, "0.00", line.UnitPrice().Raw)
	require.Len(t, line.Options(), 1)
	assert.Equal(t, "Cable", line.Options()[0].Name)
}

func TestApplyCategoryFilter_ClearRestoresFullCatalogue(t *testing.T) {
	s, _, catA := testSession(KindSales)
	line := s.Editor.Lines()[0]
	require.NoError(t, s.Editor.ApplyCategoryFilter(line.ID(), &catA))

	require.NoError(t, s.Editor.ApplyCategoryFilter(line.ID(), nil))

	assert.Len(t, line.Options(), 3)
	assert.Nil(t, line.CategoryFilter())
}

func TestApplyCategoryFilter_ScopedToOneLine(t *testing.T) {
	s, _, catA := testSession(KindSales)
	first := s.Editor.Lines()[0]
	second := s.Editor.AddLine()

	require.NoError(t, s.Editor.ApplyCategoryFilter(first.ID(), &catA))

	assert.Len(t, first.Options(), 1)
	assert.Len(t, second.Options(), 3)
}

func TestValidate_RequiresProductOnEveryLine(t *testing.T) {
	s, products, _ := testSession(KindSales)
	line := s.Editor.Lines()[0]

	valid, errs := s.Editor.Validate()
	assert.False(t, valid)
	require.Len(t, errs, 1)
	assert.Equal(t, apperror.CodeNoProduct, errs[0].Code)

	require.NoError(t, s.Editor.SelectProduct(line.ID(), &products[0].ID))

	valid, errs = s.Editor.Validate()
	assert.True(t, valid)
	assert.Empty(t, errs)
}

func TestValidate_CollectsAllLineErrors(t *testing.T) {
	s, products, _ := testSession(KindSales)
	first := s.Editor.Lines()[0]
	s.Editor.AddLine()

	require.NoError(t, s.Editor.SelectProduct(first.ID(), &products[0].ID))
	require.NoError(t, s.Editor.SetQuantity(first.ID(), "-1"))

	valid, errs := s.Editor.Validate()

	assert.False(t, valid)
	// Bad quantity on the first line plus missing product on the second.
	assert.Len(t, errs, 2)
}

func TestValidate_QuantityMustBeWholeAndAtLeastOne(t *testing.T) {
	s, products, _ := testSession(KindSales)
	line := s.Editor.Lines()[0]
	require.NoError(t, s.Editor.SelectProduct(line.ID(), &products[0].ID))

	for _, raw := range []string{"0", "2.9"} {
		require.NoError(t, s.Editor.SetQuantity(line.ID(), raw))

		valid, errs := s.Editor.Validate()
		assert.False(t, valid, "quantity %q", raw)
		require.Len(t, errs, 1, "quantity %q", raw)
		assert.Equal(t, apperror.CodeInvalidQuantity, errs[0].Code)
	}

	require.NoError(t, s.Editor.SetQuantity(line.ID(), "3"))

	valid, errs := s.Editor.Validate()
	assert.True(t, valid)
	assert.Empty(t, errs)
	assert.Equal(t, 3, s.Editor.Records()[0].Quantity)
}

func TestRecords_SalesCarriesDiscount(t *testing.T) {
	s, products, _ := testSession(KindSales)
	line := s.Editor.Lines()[0]
	require.NoError(t, s.Editor.SelectProduct(line.ID(), &products[0].ID))
	require.NoError(t, s.Editor.SetQuantity(line.ID(), "3"))
	require.NoError(t, s.Editor.SetLineDiscount(line.ID(), "0.50"))

	recs := s.Editor.Records()

	require.Len(t, recs, 1)
	assert.Equal(t, products[0].ID, recs[0].ProductID)
	assert.Equal(t, 3, recs[0].Quantity)
	assert.Equal(t, "4.00", recs[0].UnitPrice.StringFixed(2))
	require.NotNil(t, recs[0].Discount)
	assert.Equal(t, "0.50", recs[0].Discount.StringFixed(2))
	assert.Nil(t, recs[0].TaxRate)
}

func TestRecords_PurchaseCarriesTaxRate(t *testing.T) {
	s, products, _ := testSession(KindPurchase)
	line := s.Editor.Lines()[0]
	require.NoError(t, s.Editor.SelectProduct(line.ID(), &products[0].ID))
	require.NoError(t, s.Editor.SetTaxRate(line.ID(), enum.TaxRateExempt))

	recs := s.Editor.Records()

	require.Len(t, recs, 1)
	require.NotNil(t, recs[0].TaxRate)
	assert.True(t, recs[0].TaxRate.IsZero())
	assert.Nil(t, recs[0].Discount)
}

func TestLine_LookupByUnknownID(t *testing.T) {
	s, _, _ := testSession(KindSales)

	_, err := s.Editor.Line(999)

	assert.ErrorIs(t, err, apperror.ErrLineNotFound)
}
