package request

import (
	"time"

	"github.com/adelgadoq/mystock-api/internal/domain/enum"
)

// SalesOrderFilterRequest represents sales order filter parameters
type SalesOrderFilterRequest struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// PurchaseOrderFilterRequest represents purchase order filter parameters
type PurchaseOrderFilterRequest struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// UpdateSalesOrderStatusRequest represents a sales order status change
type UpdateSalesOrderStatusRequest struct {
	Status enum.SalesOrderStatus `json:"status"`
}

// UpdatePurchaseOrderStatusRequest represents a purchase order status change
type UpdatePurchaseOrderStatusRequest struct {
	Status enum.PurchaseOrderStatus `json:"status"`
}

// UpdateLineQuantityRequest carries a raw quantity input for an order line
type UpdateLineQuantityRequest struct {
	Quantity string `json:"quantity"`
}

// ReceiveLineRequest records a partial receipt on a purchase order line
type ReceiveLineRequest struct {
	QuantityReceived int `json:"quantity_received"`
}

// AddOrderLineRequest appends a line to a persisted order. Numeric inputs
// are raw strings, same as the editing session fields.
type AddOrderLineRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  string  `json:"quantity"`
	UnitPrice string  `json:"unit_price"`
	Discount  *string `json:"discount"`
	TaxRate   *int    `json:"tax_rate"`
}

// SubmitSalesOrderRequest carries the order header for a session submission
type SubmitSalesOrderRequest struct {
	CustomerName string     `json:"customer_name" binding:"required,max=255"`
	OrderDate    *time.Time `json:"order_date"`
	PaymentType  string     `json:"payment_type" binding:"omitempty,max=50"`
	Notes        *string    `json:"notes"`
}

// SubmitPurchaseOrderRequest carries the order header for a session submission
type SubmitPurchaseOrderRequest struct {
	SupplierName       string     `json:"supplier_name" binding:"required,max=255"`
	OrderDate          *time.Time `json:"order_date"`
	ExpectedDeliveryAt *time.Time `json:"expected_delivery_at"`
	Notes              *string    `json:"notes"`
}
