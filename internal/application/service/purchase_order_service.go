package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adelgadoq/mystock-api/internal/application/editor"
	"github.com/adelgadoq/mystock-api/internal/domain/entity"
	"github.com/adelgadoq/mystock-api/internal/domain/enum"
	"github.com/adelgadoq/mystock-api/internal/domain/repository"
	"github.com/adelgadoq/mystock-api/pkg/apperror"
	"github.com/adelgadoq/mystock-api/pkg/pagination"
	"github.com/adelgadoq/mystock-api/pkg/utils"
)

// PurchaseOrderService handles purchase order operations. Receipts are the
// only purchase events that touch stock: a full receipt adds each line's
// outstanding quantity, a partial receipt adds what actually arrived.
type PurchaseOrderService struct {
	orderRepo   repository.PurchaseOrderRepository
	lineRepo    repository.PurchaseOrderLineRepository
	productRepo repository.ProductRepository
}

// NewPurchaseOrderService creates a new purchase order service
func NewPurchaseOrderService(
	orderRepo repository.PurchaseOrderRepository,
	lineRepo repository.PurchaseOrderLineRepository,
	productRepo repository.ProductRepository,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:   orderRepo,
		lineRepo:    lineRepo,
		productRepo: productRepo,
	}
}

// CreatePurchaseOrderInput represents the create purchase order input
type CreatePurchaseOrderInput struct {
	SupplierName       string
	OrderDate          time.Time
	ExpectedDeliveryAt *time.Time
	Notes              *string
	Lines              []editor.LineRecord
}

// CreatePurchaseOrder creates a purchase order from editor line records.
// Nothing is added to stock until the order is received.
func (s *PurchaseOrderService) CreatePurchaseOrder(ctx context.Context, input *CreatePurchaseOrderInput) (*entity.PurchaseOrder, error) {
	if len(input.Lines) == 0 {
		return nil, apperror.NewBadRequestError("An order needs at least one line item")
	}

	productIDs := make([]uuid.UUID, len(input.Lines))
	for i, rec := range input.Lines {
		productIDs[i] = rec.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	lines := make([]entity.PurchaseOrderLine, 0, len(input.Lines))
	for _, rec := range input.Lines {
		if _, exists := productMap[rec.ProductID]; !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", rec.ProductID))
		}
		lines = append(lines, buildPurchaseLine(rec))
	}

	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	order := &entity.PurchaseOrder{
		OrderNo:            utils.GeneratePurchaseOrderNo(),
		SupplierName:       input.SupplierName,
		OrderDate:          orderDate,
		ExpectedDeliveryAt: input.ExpectedDeliveryAt,
		Status:             enum.PurchaseOrderStatusPending,
		Notes:              input.Notes,
	}
	applyPurchaseTotals(order, lines)

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	for i := range lines {
		lines[i].OrderID = order.ID
	}
	if err := s.lineRepo.CreateBatch(ctx, lines); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithLines(ctx, order.ID)
}

// GetPurchaseOrder retrieves a purchase order with its lines
func (s *PurchaseOrderService) GetPurchaseOrder(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	return order, nil
}

// ListPurchaseOrders lists purchase orders with filtering
func (s *PurchaseOrderService) ListPurchaseOrders(ctx context.Context, params *repository.PurchaseOrderFilterParams) (*pagination.PaginatedResult[entity.PurchaseOrder], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// UpdateStatus moves a purchase order to a new status. Transitions into a
// status that requires line items are blocked while the order has none. A
// full receipt adds each line's outstanding quantity to stock and aligns
// its received quantity; reverting a receipt subtracts what it added.
func (s *PurchaseOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enum.PurchaseOrderStatus) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetWithLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}

	if !editor.CanTransition(status, len(order.Lines)) {
		return nil, apperror.ErrStatusTransitionBlocked
	}

	deltas := PurchaseStatusDeltas(order.Lines, order.Status, status)
	if err := s.productRepo.AdjustStockBatch(ctx, deltas); err != nil {
		return nil, err
	}

	if status == enum.PurchaseOrderStatusReceived {
		for i := range order.Lines {
			line := &order.Lines[i]
			if line.QuantityReceived == line.QuantityOrdered {
				continue
			}
			line.QuantityReceived = line.QuantityOrdered
			if err := s.lineRepo.Update(ctx, line); err != nil {
				return nil, err
			}
		}
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithLines(ctx, orderID)
}

// ReceiveLine records a partial receipt on one line: the difference between
// the new and the previous received quantity lands on the product's actual
// stock. The order must be sitting in the partially received status.
func (s *PurchaseOrderService) ReceiveLine(ctx context.Context, orderID, lineID uuid.UUID, received int) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	if order.Status != enum.PurchaseOrderStatusPartiallyReceived {
		return nil, apperror.NewConflictError("Order is not in partial receipt")
	}

	line, err := s.lineRepo.GetByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil || line.OrderID != order.ID {
		return nil, apperror.ErrLineNotFound
	}

	if received < 0 || received > line.QuantityOrdered {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			*apperror.NewFieldError("quantity_received", apperror.CodeNegativeValue,
				fmt.Sprintf("received quantity must stay between 0 and %d", line.QuantityOrdered)),
		})
	}

	deltas := PartialReceiptDelta(line.ProductID, line.QuantityReceived, received)
	line.QuantityReceived = received
	if err := s.lineRepo.Update(ctx, line); err != nil {
		return nil, err
	}

	if err := s.productRepo.AdjustStockBatch(ctx, deltas); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithLines(ctx, orderID)
}

// AddLine appends a line item to a purchase order that has not started
// receiving yet.
func (s *PurchaseOrderService) AddLine(ctx context.Context, orderID uuid.UUID, rec editor.LineRecord) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetWithLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	if err := ensureNotReceiving(order); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, rec.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	line := buildPurchaseLine(rec)
	line.OrderID = order.ID
	if err := s.lineRepo.Create(ctx, &line); err != nil {
		return nil, err
	}

	return s.refreshTotals(ctx, orderID)
}

// RemoveLine deletes a line item. The last remaining line of an order can
// never be removed, and lines are frozen once receiving has started.
func (s *PurchaseOrderService) RemoveLine(ctx context.Context, orderID, lineID uuid.UUID) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetWithLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	if err := ensureNotReceiving(order); err != nil {
		return nil, err
	}

	if !order.CanRemoveLine() {
		return nil, apperror.ErrLastLineProtected
	}

	line, err := s.lineRepo.GetByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil || line.OrderID != order.ID {
		return nil, apperror.ErrLineNotFound
	}

	if err := s.lineRepo.Delete(ctx, lineID); err != nil {
		return nil, err
	}

	return s.refreshTotals(ctx, orderID)
}

// DeletePurchaseOrder removes an order after reverting any receipt it has
// already applied to stock.
func (s *PurchaseOrderService) DeletePurchaseOrder(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.GetWithLines(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Purchase order")
	}

	deltas := PurchaseStatusDeltas(order.Lines, order.Status, enum.PurchaseOrderStatusCancelled)
	if err := s.productRepo.AdjustStockBatch(ctx, deltas); err != nil {
		return err
	}

	return s.orderRepo.Delete(ctx, orderID)
}

func (s *PurchaseOrderService) refreshTotals(ctx context.Context, orderID uuid.UUID) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetWithLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}

	applyPurchaseTotals(order, order.Lines)
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func ensureNotReceiving(order *entity.PurchaseOrder) error {
	switch order.Status {
	case enum.PurchaseOrderStatusPartiallyReceived, enum.PurchaseOrderStatusReceived:
		return apperror.NewConflictError("Order lines cannot change after receiving starts")
	}
	return nil
}

// buildPurchaseLine converts an editor line record to a persisted line. The
// editor hands the tax rate over as a percentage; anything outside the
// known rates falls back to the default.
func buildPurchaseLine(rec editor.LineRecord) entity.PurchaseOrderLine {
	taxRate := enum.DefaultTaxRate
	if rec.TaxRate != nil {
		if r := enum.TaxRate(rec.TaxRate.IntPart()); r.Valid() {
			taxRate = r
		}
	}

	line := entity.PurchaseOrderLine{
		ProductID:       rec.ProductID,
		QuantityOrdered: rec.Quantity,
		UnitPrice:       toCents(rec.UnitPrice),
		TaxRate:         taxRate,
	}
	recalcPurchaseLine(&line)
	return line
}

func recalcPurchaseLine(line *entity.PurchaseOrderLine) {
	unitPrice := decimal.New(line.UnitPrice, -2)

	net := unitPrice.Mul(decimal.NewFromInt(int64(line.QuantityOrdered)))
	tax := net.Mul(line.TaxRate.Percent()).Div(decimal.NewFromInt(100)).Round(2)

	line.TaxAmount = toCents(tax)
	line.LineTotal = toCents(net.Add(tax))
}

func applyPurchaseTotals(order *entity.PurchaseOrder, lines []entity.PurchaseOrderLine) {
	var subTotal, tax, total int64
	for _, line := range lines {
		subTotal += line.UnitPrice * int64(line.QuantityOrdered)
		tax += line.TaxAmount
		total += line.LineTotal
	}
	order.SubTotal = subTotal
	order.Tax = tax
	order.Total = total
}
