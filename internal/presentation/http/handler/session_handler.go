package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adelgadoq/mystock-api/internal/application/editor"
	"github.com/adelgadoq/mystock-api/internal/application/service"
	"github.com/adelgadoq/mystock-api/internal/domain/enum"
	"github.com/adelgadoq/mystock-api/internal/presentation/http/dto/request"
	"github.com/adelgadoq/mystock-api/internal/presentation/http/dto/response"
	"github.com/adelgadoq/mystock-api/pkg/apperror"
)

// SessionHandler handles the editing session HTTP requests. Every mutation
// responds with the session's full rendered state so the client always
// redraws from authoritative data.
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Create opens a new editing session
func (h *SessionHandler) Create(c *gin.Context) {
	var req request.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	kind := editor.KindSales
	if req.Kind == "purchase" {
		kind = editor.KindPurchase
	}

	session, err := h.sessionService.CreateSession(c.Request.Context(), kind)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Editing session created successfully", renderSession(session))
}

// Get returns the session's current state
func (h *SessionHandler) Get(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	response.OK(c, "Session retrieved successfully", renderSession(session))
}

// Close discards a session without submitting it
func (h *SessionHandler) Close(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	if err := h.sessionService.CloseSession(id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddLine appends a new empty line
func (h *SessionHandler) AddLine(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	if _, err := h.sessionService.AddLine(id); err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithSession(c, id, "Line added successfully")
}

// RemoveLine removes a line; the last remaining line is protected
func (h *SessionHandler) RemoveLine(c *gin.Context) {
	id, lineID, ok := h.lineParams(c)
	if !ok {
		return
	}

	if err := h.sessionService.RemoveLine(id, lineID); err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithSession(c, id, "Line removed successfully")
}

// SelectProduct sets or clears a line's product
func (h *SessionHandler) SelectProduct(c *gin.Context) {
	id, lineID, ok := h.lineParams(c)
	if !ok {
		return
	}

	var req request.SelectProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var productID *uuid.UUID
	if req.ProductID != "" {
		pid, err := uuid.Parse(req.ProductID)
		if err != nil {
			response.BadRequest(c, "Invalid product ID")
			return
		}
		productID = &pid
	}

	if err := h.sessionService.SelectProduct(id, lineID, productID); err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithSession(c, id, "Product selected successfully")
}

// SetQuantity commits a raw quantity input
func (h *SessionHandler) SetQuantity(c *gin.Context) {
	h.setField(c, h.sessionService.SetQuantity)
}

// SetUnitPrice commits a raw unit price input
func (h *SessionHandler) SetUnitPrice(c *gin.Context) {
	h.setField(c, h.sessionService.SetUnitPrice)
}

// SetLineDiscount commits a raw discount input (sales sessions)
func (h *SessionHandler) SetLineDiscount(c *gin.Context) {
	h.setField(c, h.sessionService.SetLineDiscount)
}

// SetTaxRate commits a tax rate selection (purchase sessions)
func (h *SessionHandler) SetTaxRate(c *gin.Context) {
	id, lineID, ok := h.lineParams(c)
	if !ok {
		return
	}

	var req request.SetTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.sessionService.SetTaxRate(id, lineID, enum.TaxRate(req.TaxRate)); err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithSession(c, id, "Tax rate set successfully")
}

// ApplyCategoryFilter narrows a line's selectable products and resets the
// line to its defaults.
func (h *SessionHandler) ApplyCategoryFilter(c *gin.Context) {
	id, lineID, ok := h.lineParams(c)
	if !ok {
		return
	}

	var req request.ApplyCategoryFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var categoryID *uuid.UUID
	if req.CategoryID != "" {
		cid, err := uuid.Parse(req.CategoryID)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		categoryID = &cid
	}

	if err := h.sessionService.ApplyCategoryFilter(id, lineID, categoryID); err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithSession(c, id, "Category filter applied successfully")
}

// Validate runs the aggregate submission gate without submitting
func (h *SessionHandler) Validate(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	valid, fieldErrs, err := h.sessionService.Validate(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Validation completed", gin.H{
		"valid":  valid,
		"errors": fieldErrs,
	})
}

// SubmitSales validates the session and persists it as a sales order
func (h *SessionHandler) SubmitSales(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.SubmitSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.SubmitSalesInput{
		CustomerName: req.CustomerName,
		PaymentType:  req.PaymentType,
		Notes:        req.Notes,
	}
	if req.OrderDate != nil {
		input.OrderDate = *req.OrderDate
	}

	order, err := h.sessionService.SubmitSales(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sales order created successfully", order)
}

// SubmitPurchase validates the session and persists it as a purchase order
func (h *SessionHandler) SubmitPurchase(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.SubmitPurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.SubmitPurchaseInput{
		SupplierName:       req.SupplierName,
		ExpectedDeliveryAt: req.ExpectedDeliveryAt,
		Notes:              req.Notes,
	}
	if req.OrderDate != nil {
		input.OrderDate = *req.OrderDate
	}

	order, err := h.sessionService.SubmitPurchase(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase order created successfully", order)
}

func (h *SessionHandler) session(c *gin.Context) (*editor.Session, bool) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return nil, false
	}

	session, err := h.sessionService.GetSession(id)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return session, true
}

func (h *SessionHandler) lineParams(c *gin.Context) (uuid.UUID, int, bool) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return uuid.Nil, 0, false
	}
	lineID, ok := ParseIntParam(c, "lineId")
	if !ok {
		response.BadRequest(c, "Invalid line ID")
		return uuid.Nil, 0, false
	}
	return id, lineID, true
}

func (h *SessionHandler) setField(c *gin.Context, set func(uuid.UUID, int, string) error) {
	id, lineID, ok := h.lineParams(c)
	if !ok {
		return
	}

	var req request.SetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := set(id, lineID, req.Value); err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithSession(c, id, "Field updated successfully")
}

func (h *SessionHandler) respondWithSession(c *gin.Context, id uuid.UUID, message string) {
	session, err := h.sessionService.GetSession(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, message, renderSession(session))
}

// lineView is the rendered state of one editor line
type lineView struct {
	ID             int                    `json:"id"`
	ProductID      *uuid.UUID             `json:"product_id,omitempty"`
	ProductName    string                 `json:"product_name,omitempty"`
	AvailableStock int                    `json:"available_stock"`
	Quantity       string                 `json:"quantity"`
	UnitPrice      string                 `json:"unit_price"`
	Discount       string                 `json:"discount,omitempty"`
	TaxRate        int                    `json:"tax_rate,omitempty"`
	CategoryFilter *uuid.UUID             `json:"category_filter,omitempty"`
	Options        []optionView           `json:"options"`
	Errors         []apperror.FieldError  `json:"errors,omitempty"`
}

// optionView is one selectable product under a line's current filter
type optionView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Available int       `json:"available"`
}

type sessionView struct {
	ID                   uuid.UUID  `json:"id"`
	Kind                 string     `json:"kind"`
	Lines                []lineView `json:"lines"`
	RemoveButtonsVisible bool       `json:"remove_buttons_visible"`
}

func renderSession(s *editor.Session) sessionView {
	view := sessionView{
		ID:                   s.ID,
		Kind:                 s.Kind.String(),
		RemoveButtonsVisible: s.Editor.RemoveButtonsVisible(),
	}

	for _, l := range s.Editor.Lines() {
		lv := lineView{
			ID:             l.ID(),
			AvailableStock: l.AvailableStock(),
			Quantity:       l.Quantity().Raw,
			UnitPrice:      l.UnitPrice().Raw,
			CategoryFilter: l.CategoryFilter(),
			Errors:         l.FieldErrors(),
		}

		if p := l.Product(); p != nil {
			id := p.ID
			lv.ProductID = &id
			lv.ProductName = p.Name
		}

		switch s.Kind {
		case editor.KindSales:
			lv.Discount = l.LineDiscount().Raw
		case editor.KindPurchase:
			lv.TaxRate = int(l.TaxRate())
		}

		for _, opt := range l.Options() {
			lv.Options = append(lv.Options, optionView{
				ID:        opt.ID,
				Name:      opt.Name,
				Available: opt.Available(),
			})
		}

		view.Lines = append(view.Lines, lv)
	}
	return view
}
