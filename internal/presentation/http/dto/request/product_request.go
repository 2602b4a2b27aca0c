package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request. Quantities and
// prices are raw strings: the service layer parses them with the permissive
// pipeline so an invalid value surfaces as a field error, not a bind error.
type CreateProductRequest struct {
	CategoryID       *uuid.UUID `json:"category_id"`
	Code             string     `json:"code" binding:"omitempty,max=100"`
	Name             string     `json:"name" binding:"required,min=2,max=255"`
	ActualQuantity   string     `json:"actual_quantity"`
	ReservedQuantity string     `json:"reserved_quantity"`
	MinimumStock     string     `json:"minimum_stock"`
	PurchasePrice    string     `json:"purchase_price"`
	SalePrice        string     `json:"sale_price"`
	Notes            *string    `json:"notes"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	CategoryID       *uuid.UUID `json:"category_id"`
	ClearCategory    bool       `json:"clear_category"`
	Code             *string    `json:"code" binding:"omitempty,min=1,max=100"`
	Name             *string    `json:"name" binding:"omitempty,min=2,max=255"`
	ActualQuantity   *string    `json:"actual_quantity"`
	ReservedQuantity *string    `json:"reserved_quantity"`
	MinimumStock     *string    `json:"minimum_stock"`
	PurchasePrice    *string    `json:"purchase_price"`
	SalePrice        *string    `json:"sale_price"`
	Notes            *string    `json:"notes"`
}

// MarginPreviewRequest represents a live margin preview request
type MarginPreviewRequest struct {
	PurchasePrice string `json:"purchase_price"`
	SalePrice     string `json:"sale_price"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	LowStock   bool   `form:"low_stock"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

// UpdateCategoryRequest represents a category update request
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}
