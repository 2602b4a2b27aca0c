package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adelgadoq/mystock-api/internal/domain/entity"
	"github.com/adelgadoq/mystock-api/internal/domain/enum"
	"github.com/adelgadoq/mystock-api/internal/domain/repository"
)

func salesLines(quantities map[uuid.UUID]int) []entity.SalesOrderLine {
	lines := make([]entity.SalesOrderLine, 0, len(quantities))
	for id, q := range quantities {
		lines = append(lines, entity.SalesOrderLine{ProductID: id, Quantity: q})
	}
	return lines
}

func TestSalesStatusDeltas_PendingToDelivered(t *testing.T) {
	productID := uuid.New()
	lines := salesLines(map[uuid.UUID]int{productID: 4})

	deltas := SalesStatusDeltas(lines, enum.SalesOrderStatusPending, enum.SalesOrderStatusDelivered)

	// The reservation is released and the stock consumed.
	require.Len(t, deltas, 1)
	assert.Equal(t, repository.StockDelta{Actual: -4, Reserved: -4}, deltas[productID])
}

func TestSalesStatusDeltas_PendingToProcessingKeepsReservation(t *testing.T) {
	productID := uuid.New()
	lines := salesLines(map[uuid.UUID]int{productID: 4})

	deltas := SalesStatusDeltas(lines, enum.SalesOrderStatusPending, enum.SalesOrderStatusProcessing)

	require.Len(t, deltas, 1)
	assert.True(t, deltas[productID].IsZero())
}

func TestSalesStatusDeltas_PendingToCancelledReleases(t *testing.T) {
	productID := uuid.New()
	lines := salesLines(map[uuid.UUID]int{productID: 4})

	deltas := SalesStatusDeltas(lines, enum.SalesOrderStatusPending, enum.SalesOrderStatusCancelled)

	assert.Equal(t, repository.StockDelta{Reserved: -4}, deltas[productID])
}

func TestSalesStatusDeltas_DeliveredToCancelledRestocks(t *testing.T) {
	productID := uuid.New()
	lines := salesLines(map[uuid.UUID]int{productID: 4})

	deltas := SalesStatusDeltas(lines, enum.SalesOrderStatusDelivered, enum.SalesOrderStatusCancelled)

	assert.Equal(t, repository.StockDelta{Actual: 4}, deltas[productID])
}

func TestSalesStatusDeltas_CancelledToPendingReserves(t *testing.T) {
	productID := uuid.New()
	lines := salesLines(map[uuid.UUID]int{productID: 4})

	deltas := SalesStatusDeltas(lines, enum.SalesOrderStatusCancelled, enum.SalesOrderStatusPending)

	assert.Equal(t, repository.StockDelta{Reserved: 4}, deltas[productID])
}

func TestSalesStatusDeltas_SameStatusIsEmpty(t *testing.T) {
	lines := salesLines(map[uuid.UUID]int{uuid.New(): 4})

	deltas := SalesStatusDeltas(lines, enum.SalesOrderStatusPending, enum.SalesOrderStatusPending)

	assert.Empty(t, deltas)
}

func TestSalesStatusDeltas_AccumulatesPerProduct(t *testing.T) {
	productID := uuid.New()
	lines := []entity.SalesOrderLine{
		{ProductID: productID, Quantity: 2},
		{ProductID: productID, Quantity: 3},
	}

	deltas := SalesStatusDeltas(lines, enum.SalesOrderStatusPending, enum.SalesOrderStatusCancelled)

	assert.Equal(t, repository.StockDelta{Reserved: -5}, deltas[productID])
}

func TestSalesLineDelta(t *testing.T) {
	productID := uuid.New()

	added := SalesLineDelta(enum.SalesOrderStatusPending, productID, 0, 5)
	assert.Equal(t, repository.StockDelta{Reserved: 5}, added[productID])

	removed := SalesLineDelta(enum.SalesOrderStatusProcessing, productID, 5, 0)
	assert.Equal(t, repository.StockDelta{Reserved: -5}, removed[productID])

	changed := SalesLineDelta(enum.SalesOrderStatusPending, productID, 2, 7)
	assert.Equal(t, repository.StockDelta{Reserved: 5}, changed[productID])
}

func TestSalesLineDelta_NoReservationOutsideReservingStatuses(t *testing.T) {
	productID := uuid.New()

	assert.Empty(t, SalesLineDelta(enum.SalesOrderStatusCancelled, productID, 0, 5))
	assert.Empty(t, SalesLineDelta(enum.SalesOrderStatusDelivered, productID, 0, 5))
	assert.Empty(t, SalesLineDelta(enum.SalesOrderStatusPending, productID, 5, 5))
}

func TestPurchaseStatusDeltas_FullReceipt(t *testing.T) {
	productID := uuid.New()
	lines := []entity.PurchaseOrderLine{{ProductID: productID, QuantityOrdered: 10}}

	deltas := PurchaseStatusDeltas(lines, enum.PurchaseOrderStatusSent, enum.PurchaseOrderStatusReceived)

	assert.Equal(t, repository.StockDelta{Actual: 10}, deltas[productID])
}

func TestPurchaseStatusDeltas_PartialThenFullReceipt(t *testing.T) {
	productID := uuid.New()
	lines := []entity.PurchaseOrderLine{{ProductID: productID, QuantityOrdered: 10, QuantityReceived: 4}}

	deltas := PurchaseStatusDeltas(lines, enum.PurchaseOrderStatusPartiallyReceived, enum.PurchaseOrderStatusReceived)

	// Only the outstanding 6 arrive; the first 4 were already counted.
	assert.Equal(t, repository.StockDelta{Actual: 6}, deltas[productID])
}

func TestPurchaseStatusDeltas_EnteringPartialCountsReceived(t *testing.T) {
	productID := uuid.New()
	lines := []entity.PurchaseOrderLine{{ProductID: productID, QuantityOrdered: 10, QuantityReceived: 4}}

	deltas := PurchaseStatusDeltas(lines, enum.PurchaseOrderStatusSent, enum.PurchaseOrderStatusPartiallyReceived)

	assert.Equal(t, repository.StockDelta{Actual: 4}, deltas[productID])
}

func TestPurchaseStatusDeltas_RevertFullReceipt(t *testing.T) {
	productID := uuid.New()
	lines := []entity.PurchaseOrderLine{{ProductID: productID, QuantityOrdered: 10, QuantityReceived: 10}}

	deltas := PurchaseStatusDeltas(lines, enum.PurchaseOrderStatusReceived, enum.PurchaseOrderStatusCancelled)

	assert.Equal(t, repository.StockDelta{Actual: -10}, deltas[productID])
}

func TestPurchaseStatusDeltas_RevertFullToPartial(t *testing.T) {
	productID := uuid.New()
	lines := []entity.PurchaseOrderLine{{ProductID: productID, QuantityOrdered: 10, QuantityReceived: 4}}

	deltas := PurchaseStatusDeltas(lines, enum.PurchaseOrderStatusReceived, enum.PurchaseOrderStatusPartiallyReceived)

	assert.Equal(t, repository.StockDelta{Actual: -6}, deltas[productID])
}

func TestPurchaseStatusDeltas_RevertPartialReceipt(t *testing.T) {
	productID := uuid.New()
	lines := []entity.PurchaseOrderLine{{ProductID: productID, QuantityOrdered: 10, QuantityReceived: 4}}

	deltas := PurchaseStatusDeltas(lines, enum.PurchaseOrderStatusPartiallyReceived, enum.PurchaseOrderStatusCancelled)

	assert.Equal(t, repository.StockDelta{Actual: -4}, deltas[productID])
}

func TestPurchaseStatusDeltas_PendingToSentNoEffect(t *testing.T) {
	lines := []entity.PurchaseOrderLine{{ProductID: uuid.New(), QuantityOrdered: 10}}

	deltas := PurchaseStatusDeltas(lines, enum.PurchaseOrderStatusPending, enum.PurchaseOrderStatusSent)

	for _, d := range deltas {
		assert.True(t, d.IsZero())
	}
}

func TestPartialReceiptDelta(t *testing.T) {
	productID := uuid.New()

	more := PartialReceiptDelta(productID, 4, 7)
	assert.Equal(t, repository.StockDelta{Actual: 3}, more[productID])

	corrected := PartialReceiptDelta(productID, 7, 4)
	assert.Equal(t, repository.StockDelta{Actual: -3}, corrected[productID])

	assert.Empty(t, PartialReceiptDelta(productID, 4, 4))
}

func TestMergeDeltas(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	dst := map[uuid.UUID]repository.StockDelta{a: {Reserved: 2}}
	src := map[uuid.UUID]repository.StockDelta{
		a: {Actual: 1, Reserved: -2},
		b: {Actual: 5},
	}

	merged := MergeDeltas(dst, src)

	assert.Equal(t, repository.StockDelta{Actual: 1}, merged[a])
	assert.Equal(t, repository.StockDelta{Actual: 5}, merged[b])
}

func TestMergeDeltas_NilDestination(t *testing.T) {
	a := uuid.New()

	merged := MergeDeltas(nil, map[uuid.UUID]repository.StockDelta{a: {Reserved: 1}})

	require.NotNil(t, merged)
	assert.Equal(t, repository.StockDelta{Reserved: 1}, merged[a])
}
