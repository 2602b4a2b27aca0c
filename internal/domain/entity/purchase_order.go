package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adelgadoq/mystock-api/internal/domain/enum"
)

// PurchaseOrder represents an order placed with a supplier
type PurchaseOrder struct {
	ID                 uuid.UUID                `gorm:"type:uuid;primary_key" json:"id"`
	OrderNo            string                   `gorm:"size:100;unique;not null" json:"order_no"`
	SupplierName       string                   `gorm:"size:255" json:"supplier_name"`
	OrderDate          time.Time                `gorm:"type:date;not null" json:"order_date"`
	ExpectedDeliveryAt *time.Time               `gorm:"type:date" json:"expected_delivery_at,omitempty"`
	Status             enum.PurchaseOrderStatus `gorm:"default:0" json:"status"`
	SubTotal           int64                    `gorm:"default:0" json:"-"` // Stored in cents
	Tax                int64                    `gorm:"default:0" json:"-"` // Stored in cents
	Total              int64                    `gorm:"default:0" json:"-"` // Stored in cents
	Notes              *string                  `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
	DeletedAt          gorm.DeletedAt           `gorm:"index" json:"-"`

	// Relationships
	Lines []PurchaseOrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o PurchaseOrder) MarshalJSON() ([]byte, error) {
	type Alias PurchaseOrder
	return json.Marshal(&struct {
		Alias
		SubTotal float64 `json:"sub_total"`
		Tax      float64 `json:"tax"`
		Total    float64 `json:"total"`
	}{
		Alias:    Alias(o),
		SubTotal: float64(o.SubTotal) / 100,
		Tax:      float64(o.Tax) / 100,
		Total:    float64(o.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new purchase order
func (o *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseOrder model
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// HasLines reports whether the order carries at least one line item.
func (o *PurchaseOrder) HasLines() bool {
	return len(o.Lines) > 0
}

// CanRemoveLine reports whether a line may be removed without leaving the
// order empty.
func (o *PurchaseOrder) CanRemoveLine() bool {
	return len(o.Lines) > 1
}

// PurchaseOrderLine represents one line item in a purchase order.
// QuantityReceived tracks partial receipts and never exceeds
// QuantityOrdered through the receipt flow.
type PurchaseOrderLine struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	QuantityOrdered  int            `gorm:"not null" json:"quantity_ordered"`
	QuantityReceived int            `gorm:"default:0" json:"quantity_received"`
	UnitPrice        int64          `gorm:"not null" json:"-"`  // Stored in cents
	TaxRate          enum.TaxRate   `gorm:"default:7" json:"tax_rate"`
	TaxAmount        int64          `gorm:"default:0" json:"-"` // Stored in cents
	LineTotal        int64          `gorm:"not null" json:"-"`  // Stored in cents
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order   PurchaseOrder `gorm:"foreignKey:OrderID" json:"-"`
	Product Product       `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (l PurchaseOrderLine) MarshalJSON() ([]byte, error) {
	type Alias PurchaseOrderLine
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		TaxAmount float64 `json:"tax_amount"`
		LineTotal float64 `json:"line_total"`
	}{
		Alias:     Alias(l),
		UnitPrice: float64(l.UnitPrice) / 100,
		TaxAmount: float64(l.TaxAmount) / 100,
		LineTotal: float64(l.LineTotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new purchase order line
func (l *PurchaseOrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseOrderLine model
func (PurchaseOrderLine) TableName() string {
	return "purchase_order_lines"
}
