package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/adelgadoq/mystock-api/internal/domain/stock"
)

// Product represents a product in the catalogue with its tracked stock
// quantities. ActualQuantity and ReservedQuantity are plain ints on purpose:
// both may go negative under the permissive reconciliation policy, and
// reserved > actual is flagged by the validators rather than prevented here.
type Product struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID       *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Code             string         `gorm:"size:100;unique;not null" json:"code"`
	Name             string         `gorm:"size:255;not null" json:"name"`
	ActualQuantity   int            `gorm:"default:0" json:"actual_quantity"`
	ReservedQuantity int            `gorm:"default:0" json:"reserved_quantity"`
	MinimumStock     int            `gorm:"default:0" json:"minimum_stock"`
	PurchasePrice    int64          `gorm:"default:0" json:"-"` // Stored in cents
	SalePrice        int64          `gorm:"default:0" json:"-"` // Stored in cents
	Notes            *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Available returns actual minus reserved stock; negative under
// over-reservation.
func (p *Product) Available() int {
	return stock.Available(p.ActualQuantity, p.ReservedQuantity)
}

// IsLowStock reports whether the product is at or below its minimum stock.
func (p *Product) IsLowStock() bool {
	return stock.IsLowOrOutOfStock(p.ActualQuantity, p.MinimumStock)
}

// IsOverReserved reports whether reservations exceed held stock.
func (p *Product) IsOverReserved() bool {
	return stock.IsOverReserved(p.ActualQuantity, p.ReservedQuantity)
}

// PurchasePriceDecimal returns the purchase price as a decimal
func (p *Product) PurchasePriceDecimal() decimal.Decimal {
	return decimal.New(p.PurchasePrice, -2)
}

// SalePriceDecimal returns the sale price as a decimal
func (p *Product) SalePriceDecimal() decimal.Decimal {
	return decimal.New(p.SalePrice, -2)
}

// SetPurchasePriceFromDecimal sets the purchase price from a decimal value
func (p *Product) SetPurchasePriceFromDecimal(price decimal.Decimal) {
	p.PurchasePrice = price.Shift(2).IntPart()
}

// SetSalePriceFromDecimal sets the sale price from a decimal value
func (p *Product) SetSalePriceFromDecimal(price decimal.Decimal) {
	p.SalePrice = price.Shift(2).IntPart()
}

// MarshalJSON converts Product to JSON with decimal prices and the derived
// stock fields the catalogue consumers read at selection time.
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		PurchasePrice float64 `json:"purchase_price"`
		SalePrice     float64 `json:"sale_price"`
		Available     int     `json:"available"`
		LowStock      bool    `json:"low_stock"`
		OverReserved  bool    `json:"over_reserved"`
	}{
		Alias:         Alias(p),
		PurchasePrice: p.PurchasePriceDecimal().InexactFloat64(),
		SalePrice:     p.SalePriceDecimal().InexactFloat64(),
		Available:     p.Available(),
		LowStock:      p.IsLowStock(),
		OverReserved:  p.IsOverReserved(),
	})
}

// Category represents a product category
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;unique;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
