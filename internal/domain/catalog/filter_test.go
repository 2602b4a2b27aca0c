package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adelgadoq/mystock-api/internal/domain/entity"
)

func testCatalogue() ([]entity.Product, uuid.UUID, uuid.UUID) {
	catA := uuid.New()
	catB := uuid.New()
	products := []entity.Product{
		{ID: uuid.New(), Name: "Cable", CategoryID: &catA},
		{ID: uuid.New(), Name: "Switch", CategoryID: &catB},
		{ID: uuid.New(), Name: "Router", CategoryID: &catA},
		{ID: uuid.New(), Name: "Misc", CategoryID: nil},
	}
	return products, catA, catB
}

func TestFilterByCategory_NilReturnsAll(t *testing.T) {
	products, _, _ := testCatalogue()

	got := FilterByCategory(products, nil)

	require.Len(t, got, len(products))
	for i := range products {
		assert.Equal(t, products[i].ID, got[i].ID)
	}
}

func TestFilterByCategory_MatchesOnly(t *testing.T) {
	products, catA, _ := testCatalogue()

	got := FilterByCategory(products, &catA)

	require.Len(t, got, 2)
	assert.Equal(t, "Cable", got[0].Name)
	assert.Equal(t, "Router", got[1].Name)
}

func TestFilterByCategory_UncategorisedExcludedFromCategoryFilter(t *testing.T) {
	products, _, catB := testCatalogue()

	got := FilterByCategory(products, &catB)

	require.Len(t, got, 1)
	assert.Equal(t, "Switch", got[0].Name)
}

func TestFilterByCategory_UnknownCategoryIsEmpty(t *testing.T) {
	products, _, _ := testCatalogue()
	unknown := uuid.New()

	got := FilterByCategory(products, &unknown)

	assert.Empty(t, got)
}

func TestFilterByCategory_NonDestructive(t *testing.T) {
	products, catA, _ := testCatalogue()

	got := FilterByCategory(products, &catA)
	got[0].Name = "changed"

	assert.Equal(t, "Cable", products[0].Name)
	assert.Len(t, products, 4)
}

func TestFilterByCategory_Idempotent(t *testing.T) {
	products, catA, _ := testCatalogue()

	once := FilterByCategory(products, &catA)
	twice := FilterByCategory(once, &catA)

	assert.Equal(t, once, twice)
}
