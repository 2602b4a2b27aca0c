package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adelgadoq/mystock-api/internal/domain/enum"
)

// SalesOrder represents a customer sales order under composition or fulfilment
type SalesOrder struct {
	ID           uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	OrderNo      string                `gorm:"size:100;unique;not null" json:"order_no"`
	CustomerName string                `gorm:"size:255" json:"customer_name"`
	OrderDate    time.Time             `gorm:"type:date;not null" json:"order_date"`
	Status       enum.SalesOrderStatus `gorm:"default:0" json:"status"`
	SubTotal     int64                 `gorm:"default:0" json:"-"` // Stored in cents
	Discount     int64                 `gorm:"default:0" json:"-"` // Stored in cents
	Tax          int64                 `gorm:"default:0" json:"-"` // Stored in cents
	Total        int64                 `gorm:"default:0" json:"-"` // Stored in cents
	PaymentType  string                `gorm:"size:50" json:"payment_type"`
	Notes        *string               `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
	DeletedAt    gorm.DeletedAt        `gorm:"index" json:"-"`

	// Relationships
	Lines []SalesOrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o SalesOrder) MarshalJSON() ([]byte, error) {
	type Alias SalesOrder
	return json.Marshal(&struct {
		Alias
		SubTotal float64 `json:"sub_total"`
		Discount float64 `json:"discount"`
		Tax      float64 `json:"tax"`
		Total    float64 `json:"total"`
	}{
		Alias:    Alias(o),
		SubTotal: float64(o.SubTotal) / 100,
		Discount: float64(o.Discount) / 100,
		Tax:      float64(o.Tax) / 100,
		Total:    float64(o.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sales order
func (o *SalesOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesOrder model
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// HasLines reports whether the order carries at least one line item. Status
// transitions into fulfilment states are gated on this predicate.
func (o *SalesOrder) HasLines() bool {
	return len(o.Lines) > 0
}

// CanRemoveLine reports whether a line may be removed without leaving the
// order empty.
func (o *SalesOrder) CanRemoveLine() bool {
	return len(o.Lines) > 1
}

// SalesOrderLine represents one line item in a sales order
type SalesOrderLine struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity     int            `gorm:"not null" json:"quantity"`
	UnitPrice    int64          `gorm:"not null" json:"-"`          // Stored in cents
	LineDiscount int64          `gorm:"default:0" json:"-"`         // Stored in cents
	TaxRate      enum.TaxRate   `gorm:"default:7" json:"tax_rate"`
	TaxAmount    int64          `gorm:"default:0" json:"-"`         // Stored in cents
	LineTotal    int64          `gorm:"not null" json:"-"`          // Stored in cents
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order   SalesOrder `gorm:"foreignKey:OrderID" json:"-"`
	Product Product    `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (l SalesOrderLine) MarshalJSON() ([]byte, error) {
	type Alias SalesOrderLine
	return json.Marshal(&struct {
		Alias
		UnitPrice    float64 `json:"unit_price"`
		LineDiscount float64 `json:"line_discount"`
		TaxAmount    float64 `json:"tax_amount"`
		LineTotal    float64 `json:"line_total"`
	}{
		Alias:        Alias(l),
		UnitPrice:    float64(l.UnitPrice) / 100,
		LineDiscount: float64(l.LineDiscount) / 100,
		TaxAmount:    float64(l.TaxAmount) / 100,
		LineTotal:    float64(l.LineTotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sales order line
func (l *SalesOrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesOrderLine model
func (SalesOrderLine) TableName() string {
	return "sales_order_lines"
}
