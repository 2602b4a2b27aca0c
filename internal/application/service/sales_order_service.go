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
	"github.com/adelgadoq/mystock-api/internal/domain/stock"
	"github.com/adelgadoq/mystock-api/pkg/apperror"
	"github.com/adelgadoq/mystock-api/pkg/pagination"
	"github.com/adelgadoq/mystock-api/pkg/utils"
)

// SalesOrderService handles sales order operations and keeps product stock
// reconciled with the order's status and line items.
type SalesOrderService struct {
	orderRepo   repository.SalesOrderRepository
	lineRepo    repository.SalesOrderLineRepository
	productRepo repository.ProductRepository
}

// NewSalesOrderService creates a new sales order service
func NewSalesOrderService(
	orderRepo repository.SalesOrderRepository,
	lineRepo repository.SalesOrderLineRepository,
	productRepo repository.ProductRepository,
) *SalesOrderService {
	return &SalesOrderService{
		orderRepo:   orderRepo,
		lineRepo:    lineRepo,
		productRepo: productRepo,
	}
}

// CreateSalesOrderInput represents the create sales order input. Lines come
// from a validated editing session.
type CreateSalesOrderInput struct {
	CustomerName string
	OrderDate    time.Time
	PaymentType  string
	Notes        *string
	Lines        []editor.LineRecord
}

// CreateSalesOrder creates a sales order from editor line records. The
// order starts Pending, so each line's quantity is reserved against its
// product in one batch adjustment.
func (s *SalesOrderService) CreateSalesOrder(ctx context.Context, input *CreateSalesOrderInput) (*entity.SalesOrder, error) {
	if len(input.Lines) == 0 {
		return nil, apperror.NewBadRequestError("An order needs at least one line item")
	}

	// Batch fetch all products in one query (prevents N+1)
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

	lines := make([]entity.SalesOrderLine, 0, len(input.Lines))
	deltas := make(map[uuid.UUID]repository.StockDelta)

	for _, rec := range input.Lines {
		if _, exists := productMap[rec.ProductID]; !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", rec.ProductID))
		}

		lines = append(lines, buildSalesLine(rec))
		deltas = MergeDeltas(deltas, SalesLineDelta(enum.SalesOrderStatusPending, rec.ProductID, 0, rec.Quantity))
	}

	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	order := &entity.SalesOrder{
		OrderNo:      utils.GenerateSalesOrderNo(),
		CustomerName: input.CustomerName,
		OrderDate:    orderDate,
		Status:       enum.SalesOrderStatusPending,
		PaymentType:  input.PaymentType,
		Notes:        input.Notes,
	}
	applySalesTotals(order, lines)

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	for i := range lines {
		lines[i].OrderID = order.ID
	}
	if err := s.lineRepo.CreateBatch(ctx, lines); err != nil {
		return nil, err
	}

	if err := s.productRepo.AdjustStockBatch(ctx, deltas); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithLines(ctx, order.ID)
}

// GetSalesOrder retrieves a sales order with its lines
func (s *SalesOrderService) GetSalesOrder(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	order, err := s.orderRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Sales order")
	}
	return order, nil
}

// ListSalesOrders lists sales orders with filtering
func (s *SalesOrderService) ListSalesOrders(ctx context.Context, params *repository.SalesOrderFilterParams) (*pagination.PaginatedResult[entity.SalesOrder], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// UpdateStatus moves a sales order to a new status. Transitions into a
// status that requires line items are blocked while the order has none.
// Stock effects of the old status are released and those of the new status
// applied in one batch.
func (s *SalesOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enum.SalesOrderStatus) (*entity.SalesOrder, error) {
	order, err := s.orderRepo.GetWithLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Sales order")
	}

	if !editor.CanTransition(status, len(order.Lines)) {
		return nil, apperror.ErrStatusTransitionBlocked
	}

	deltas := SalesStatusDeltas(order.Lines, order.Status, status)
	if err := s.productRepo.AdjustStockBatch(ctx, deltas); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithLines(ctx, orderID)
}

// AddLine appends a line item to an existing sales order and adjusts the
// product's reservation if the order's status holds one.
func (s *SalesOrderService) AddLine(ctx context.Context, orderID uuid.UUID, rec editor.LineRecord) (*entity.SalesOrder, error) {
	order, err := s.orderRepo.GetWithLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Sales order")
	}

	product, err := s.productRepo.GetByID(ctx, rec.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	line := buildSalesLine(rec)
	line.OrderID = order.ID
	if err := s.lineRepo.Create(ctx, &line); err != nil {
		return nil, err
	}

	deltas := SalesLineDelta(order.Status, rec.ProductID, 0, rec.Quantity)
	if err := s.productRepo.AdjustStockBatch(ctx, deltas); err != nil {
		return nil, err
	}

	return s.refreshTotals(ctx, orderID)
}

// RemoveLine deletes a line item. The last remaining line of an order can
// never be removed.
func (s *SalesOrderService) RemoveLine(ctx context.Context, orderID, lineID uuid.UUID) (*entity.SalesOrder, error) {
	order, err := s.orderRepo.GetWithLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Sales order")
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

	deltas := SalesLineDelta(order.Status, line.ProductID, line.Quantity, 0)
	if err := s.productRepo.AdjustStockBatch(ctx, deltas); err != nil {
		return nil, err
	}

	return s.refreshTotals(ctx, orderID)
}

// UpdateLineQuantity changes a line's quantity from its raw form value and
// adjusts the product reservation by the difference.
func (s *SalesOrderService) UpdateLineQuantity(ctx context.Context, orderID, lineID uuid.UUID, rawQuantity string) (*entity.SalesOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Sales order")
	}

	line, err := s.lineRepo.GetByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil || line.OrderID != order.ID {
		return nil, apperror.ErrLineNotFound
	}

	qty, ferr := stock.ValidateNonNegative("quantity", rawQuantity)
	if ferr != nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{*ferr})
	}

	oldQty := line.Quantity
	line.Quantity = int(qty.IntPart())
	recalcSalesLine(line)
	if err := s.lineRepo.Update(ctx, line); err != nil {
		return nil, err
	}

	deltas := SalesLineDelta(order.Status, line.ProductID, oldQty, line.Quantity)
	if err := s.productRepo.AdjustStockBatch(ctx, deltas); err != nil {
		return nil, err
	}

	return s.refreshTotals(ctx, orderID)
}

// DeleteSalesOrder removes an order after returning whatever stock its
// current status holds, the same release a cancellation performs.
func (s *SalesOrderService) DeleteSalesOrder(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.GetWithLines(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Sales order")
	}

	deltas := SalesStatusDeltas(order.Lines, order.Status, enum.SalesOrderStatusCancelled)
	if err := s.productRepo.AdjustStockBatch(ctx, deltas); err != nil {
		return err
	}

	return s.orderRepo.Delete(ctx, orderID)
}

// refreshTotals recomputes an order's money columns from its current lines
// and returns the updated order.
func (s *SalesOrderService) refreshTotals(ctx context.Context, orderID uuid.UUID) (*entity.SalesOrder, error) {
	order, err := s.orderRepo.GetWithLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Sales order")
	}

	applySalesTotals(order, order.Lines)
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// buildSalesLine converts an editor line record to a persisted line. Sales
// lines carry the default tax rate; the per-line rate is a purchase order
// concern.
func buildSalesLine(rec editor.LineRecord) entity.SalesOrderLine {
	line := entity.SalesOrderLine{
		ProductID: rec.ProductID,
		Quantity:  rec.Quantity,
		UnitPrice: toCents(rec.UnitPrice),
		TaxRate:   enum.DefaultTaxRate,
	}
	if rec.Discount != nil {
		line.LineDiscount = toCents(*rec.Discount)
	}
	recalcSalesLine(&line)
	return line
}

// recalcSalesLine rederives the tax amount and line total from the line's
// quantity, unit price and discount. Arithmetic runs in decimal and lands
// back in cents.
func recalcSalesLine(line *entity.SalesOrderLine) {
	unitPrice := decimal.New(line.UnitPrice, -2)
	discount := decimal.New(line.LineDiscount, -2)

	net := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Sub(discount)
	tax := net.Mul(line.TaxRate.Percent()).Div(decimal.NewFromInt(100)).Round(2)

	line.TaxAmount = toCents(tax)
	line.LineTotal = toCents(net.Add(tax))
}

func applySalesTotals(order *entity.SalesOrder, lines []entity.SalesOrderLine) {
	var subTotal, discount, tax, total int64
	for _, line := range lines {
		subTotal += line.UnitPrice * int64(line.Quantity)
		discount += line.LineDiscount
		tax += line.TaxAmount
		total += line.LineTotal
	}
	order.SubTotal = subTotal
	order.Discount = discount
	order.Tax = tax
	order.Total = total
}

func toCents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}
