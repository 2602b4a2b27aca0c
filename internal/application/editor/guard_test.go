package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adelgadoq/mystock-api/internal/domain/enum"
)

func TestCanTransition_SalesStatuses(t *testing.T) {
	// Fulfilment statuses demand at least one line.
	assert.False(t, CanTransition(enum.SalesOrderStatusProcessing, 0))
	assert.False(t, CanTransition(enum.SalesOrderStatusDelivered, 0))
	assert.True(t, CanTransition(enum.SalesOrderStatusProcessing, 1))
	assert.True(t, CanTransition(enum.SalesOrderStatusDelivered, 3))

	// Pending and Cancelled are always reachable.
	assert.True(t, CanTransition(enum.SalesOrderStatusPending, 0))
	assert.True(t, CanTransition(enum.SalesOrderStatusCancelled, 0))
}

func TestCanTransition_PurchaseStatuses(t *testing.T) {
	assert.False(t, CanTransition(enum.PurchaseOrderStatusSent, 0))
	assert.False(t, CanTransition(enum.PurchaseOrderStatusPartiallyReceived, 0))
	assert.False(t, CanTransition(enum.PurchaseOrderStatusReceived, 0))
	assert.True(t, CanTransition(enum.PurchaseOrderStatusSent, 1))
	assert.True(t, CanTransition(enum.PurchaseOrderStatusReceived, 2))

	assert.True(t, CanTransition(enum.PurchaseOrderStatusPending, 0))
	assert.True(t, CanTransition(enum.PurchaseOrderStatusCancelled, 0))
}

func TestCanRemoveLine(t *testing.T) {
	assert.False(t, CanRemoveLine(0))
	assert.False(t, CanRemoveLine(1))
	assert.True(t, CanRemoveLine(2))
	assert.True(t, CanRemoveLine(10))
}
