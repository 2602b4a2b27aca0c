package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adelgadoq/mystock-api/internal/application/editor"
	"github.com/adelgadoq/mystock-api/internal/application/service"
	"github.com/adelgadoq/mystock-api/internal/domain/enum"
	"github.com/adelgadoq/mystock-api/internal/domain/repository"
	"github.com/adelgadoq/mystock-api/internal/domain/stock"
	"github.com/adelgadoq/mystock-api/internal/presentation/http/dto/request"
	"github.com/adelgadoq/mystock-api/internal/presentation/http/dto/response"
	"github.com/adelgadoq/mystock-api/pkg/apperror"
	"github.com/adelgadoq/mystock-api/pkg/pagination"
)

// SalesOrderHandler handles sales order HTTP requests
type SalesOrderHandler struct {
	orderService *service.SalesOrderService
}

// NewSalesOrderHandler creates a new sales order handler
func NewSalesOrderHandler(orderService *service.SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{orderService: orderService}
}

// List handles listing sales orders
func (h *SalesOrderHandler) List(c *gin.Context) {
	var filter request.SalesOrderFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SalesOrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	if filter.Status != "" {
		var status enum.SalesOrderStatus
		if err := status.UnmarshalJSON([]byte(`"` + filter.Status + `"`)); err == nil {
			params.Status = &status
		}
	}
	applyDateRange(filter.StartDate, filter.EndDate, &params.StartDate, &params.EndDate)

	result, err := h.orderService.ListSalesOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales orders retrieved successfully", result)
}

// Get handles retrieving a single sales order with its lines
func (h *SalesOrderHandler) Get(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetSalesOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales order retrieved successfully", order)
}

// UpdateStatus handles sales order status changes
func (h *SalesOrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdateSalesOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales order status updated successfully", order)
}

// AddLine handles appending a line item to a persisted order
func (h *SalesOrderHandler) AddLine(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.AddOrderLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	rec, err := lineRecordFromRequest(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	order, err := h.orderService.AddLine(c.Request.Context(), id, rec)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order line added successfully", order)
}

// RemoveLine handles deleting a line item; the last line is protected
func (h *SalesOrderHandler) RemoveLine(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}
	lineID, ok := ParseUUIDParam(c, "lineId")
	if !ok {
		response.BadRequest(c, "Invalid line ID")
		return
	}

	order, err := h.orderService.RemoveLine(c.Request.Context(), id, lineID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order line removed successfully", order)
}

// UpdateLineQuantity handles changing a line's quantity
func (h *SalesOrderHandler) UpdateLineQuantity(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}
	lineID, ok := ParseUUIDParam(c, "lineId")
	if !ok {
		response.BadRequest(c, "Invalid line ID")
		return
	}

	var req request.UpdateLineQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateLineQuantity(c.Request.Context(), id, lineID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order line updated successfully", order)
}

// Delete handles sales order deletion
func (h *SalesOrderHandler) Delete(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.DeleteSalesOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales order deleted successfully", nil)
}

// lineRecordFromRequest builds an editor line record from a direct add-line
// request, running the same non-negative validation the editing session
// applies to its fields.
func lineRecordFromRequest(req *request.AddOrderLineRequest) (editor.LineRecord, error) {
	var rec editor.LineRecord

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return rec, apperror.NewBadRequestError("Invalid product ID")
	}
	rec.ProductID = productID

	var fieldErrs []apperror.FieldError

	qty, ferr := stock.ValidateNonNegative("quantity", req.Quantity)
	if ferr != nil {
		fieldErrs = append(fieldErrs, *ferr)
	}
	price, ferr := stock.ValidateNonNegative("unit_price", req.UnitPrice)
	if ferr != nil {
		fieldErrs = append(fieldErrs, *ferr)
	}

	if req.Discount != nil {
		discount, ferr := stock.ValidateNonNegative("discount", *req.Discount)
		if ferr != nil {
			fieldErrs = append(fieldErrs, *ferr)
		} else {
			d := discount.Round(2)
			rec.Discount = &d
		}
	}
	if req.TaxRate != nil {
		rate := enum.TaxRate(*req.TaxRate)
		if !rate.Valid() {
			fieldErrs = append(fieldErrs, *apperror.NewFieldError("tax_rate",
				apperror.CodeInvalidTaxRate, "tax rate must be one of the enumerated IGIC rates"))
		} else {
			t := rate.Percent()
			rec.TaxRate = &t
		}
	}

	if len(fieldErrs) > 0 {
		return rec, apperror.NewValidationError(fieldErrs)
	}

	rec.Quantity = int(qty.IntPart())
	rec.UnitPrice = price.Round(2)
	return rec, nil
}

// applyDateRange parses optional YYYY-MM-DD date bounds into filter params
func applyDateRange(start, end string, startDst, endDst **time.Time) {
	if start != "" {
		if t, err := time.Parse("2006-01-02", start); err == nil {
			*startDst = &t
		}
	}
	if end != "" {
		if t, err := time.Parse("2006-01-02", end); err == nil {
			*endDst = &t
		}
	}
}
