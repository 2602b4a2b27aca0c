package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/adelgadoq/mystock-api/internal/application/service"
	"github.com/adelgadoq/mystock-api/internal/domain/enum"
	"github.com/adelgadoq/mystock-api/internal/domain/repository"
	"github.com/adelgadoq/mystock-api/internal/presentation/http/dto/request"
	"github.com/adelgadoq/mystock-api/internal/presentation/http/dto/response"
	"github.com/adelgadoq/mystock-api/pkg/pagination"
)

// PurchaseOrderHandler handles purchase order HTTP requests
type PurchaseOrderHandler struct {
	orderService *service.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new purchase order handler
func NewPurchaseOrderHandler(orderService *service.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orderService: orderService}
}

// List handles listing purchase orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	var filter request.PurchaseOrderFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.PurchaseOrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	if filter.Status != "" {
		var status enum.PurchaseOrderStatus
		if err := status.UnmarshalJSON([]byte(`"` + filter.Status + `"`)); err == nil {
			params.Status = &status
		}
	}
	applyDateRange(filter.StartDate, filter.EndDate, &params.StartDate, &params.EndDate)

	result, err := h.orderService.ListPurchaseOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchase orders retrieved successfully", result)
}

// Get handles retrieving a single purchase order with its lines
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order retrieved successfully", order)
}

// UpdateStatus handles purchase order status changes, including full and
// partial receipts and their reversion.
func (h *PurchaseOrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdatePurchaseOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order status updated successfully", order)
}

// ReceiveLine handles recording a partial receipt on one line
func (h *PurchaseOrderHandler) ReceiveLine(c *gin.Context) {
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

	var req request.ReceiveLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.ReceiveLine(c.Request.Context(), id, lineID, req.QuantityReceived)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt recorded successfully", order)
}

// AddLine handles appending a line item to a persisted order
func (h *PurchaseOrderHandler) AddLine(c *gin.Context) {
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
func (h *PurchaseOrderHandler) RemoveLine(c *gin.Context) {
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

// Delete handles purchase order deletion
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.DeletePurchaseOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order deleted successfully", nil)
}
