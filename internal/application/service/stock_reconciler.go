package service

import (
	"github.com/google/uuid"

	"github.com/adelgadoq/mystock-api/internal/domain/entity"
	"github.com/adelgadoq/mystock-api/internal/domain/enum"
	"github.com/adelgadoq/mystock-api/internal/domain/repository"
)

// Stock reconciliation rules.
//
// Sales order lines hold a reservation against their product while the order
// sits in a reserving status (Pending, Processing). Delivery consumes actual
// stock; cancellation only releases what was held. Purchase order receipts
// add to actual stock, fully or partially. Every transition is expressed as
// a signed per-product delta so the whole graph is a pure, testable function
// of (lines, from, to); the repositories apply the deltas in one
// transaction. Deltas are permissive: reservations and actual stock may go
// negative, and the validators flag the condition instead of storage
// rejecting it.

// MergeDeltas folds src into dst, allocating dst when nil.
func MergeDeltas(dst, src map[uuid.UUID]repository.StockDelta) map[uuid.UUID]repository.StockDelta {
	if dst == nil {
		dst = make(map[uuid.UUID]repository.StockDelta, len(src))
	}
	for id, d := range src {
		dst[id] = dst[id].Add(d)
	}
	return dst
}

// SalesStatusDeltas computes the per-product stock adjustments for a sales
// order moving between statuses: the effect of the old status is undone
// before the effect of the new one is applied.
func SalesStatusDeltas(lines []entity.SalesOrderLine, from, to enum.SalesOrderStatus) map[uuid.UUID]repository.StockDelta {
	deltas := make(map[uuid.UUID]repository.StockDelta)
	if from == to {
		return deltas
	}

	for _, line := range lines {
		d := deltas[line.ProductID]
		q := line.Quantity

		if from.ReservesStock() {
			d.Reserved -= q
		}
		if from.ConsumesStock() {
			d.Actual += q
		}
		if to.ReservesStock() {
			d.Reserved += q
		}
		if to.ConsumesStock() {
			d.Actual -= q
		}

		deltas[line.ProductID] = d
	}
	return deltas
}

// SalesLineDelta computes the reservation adjustment for one sales order
// line changing quantity while the order sits in the given status. Adding a
// line is oldQty 0; removing it is newQty 0. Outside reserving statuses the
// line carries no reservation and the delta is empty.
func SalesLineDelta(status enum.SalesOrderStatus, productID uuid.UUID, oldQty, newQty int) map[uuid.UUID]repository.StockDelta {
	deltas := make(map[uuid.UUID]repository.StockDelta)
	if !status.ReservesStock() || oldQty == newQty {
		return deltas
	}
	deltas[productID] = repository.StockDelta{Reserved: newQty - oldQty}
	return deltas
}

// PurchaseStatusDeltas computes the per-product stock adjustments for a
// purchase order moving between statuses. Full receipt adds each line's
// outstanding quantity to actual stock; partial receipt accounts only for
// what QuantityReceived says has arrived; reverting a receipt subtracts what
// it added.
func PurchaseStatusDeltas(lines []entity.PurchaseOrderLine, from, to enum.PurchaseOrderStatus) map[uuid.UUID]repository.StockDelta {
	deltas := make(map[uuid.UUID]repository.StockDelta)
	if from == to {
		return deltas
	}

	for _, line := range lines {
		d := deltas[line.ProductID]

		switch to {
		case enum.PurchaseOrderStatusReceived:
			if from == enum.PurchaseOrderStatusPartiallyReceived {
				d.Actual += line.QuantityOrdered - line.QuantityReceived
			} else {
				d.Actual += line.QuantityOrdered
			}

		case enum.PurchaseOrderStatusPartiallyReceived:
			if from == enum.PurchaseOrderStatusReceived {
				d.Actual -= line.QuantityOrdered - line.QuantityReceived
			} else {
				d.Actual += line.QuantityReceived
			}

		default:
			// Leaving a received state returns what the receipt added.
			switch from {
			case enum.PurchaseOrderStatusReceived:
				d.Actual -= line.QuantityOrdered
			case enum.PurchaseOrderStatusPartiallyReceived:
				d.Actual -= line.QuantityReceived
			}
		}

		deltas[line.ProductID] = d
	}
	return deltas
}

// PartialReceiptDelta computes the adjustment when a line's received
// quantity changes while its order is partially received.
func PartialReceiptDelta(productID uuid.UUID, oldReceived, newReceived int) map[uuid.UUID]repository.StockDelta {
	deltas := make(map[uuid.UUID]repository.StockDelta)
	if oldReceived == newReceived {
		return deltas
	}
	deltas[productID] = repository.StockDelta{Actual: newReceived - oldReceived}
	return deltas
}
