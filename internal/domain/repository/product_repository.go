package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/adelgadoq/mystock-api/internal/domain/entity"
	"github.com/adelgadoq/mystock-api/pkg/pagination"
)

// StockDelta is a signed adjustment to a product's stock quantities.
// Adjustments are applied as-is: either quantity may go negative, matching
// the permissive reconciliation policy (over-reservations are flagged by the
// validators, not prevented by storage).
type StockDelta struct {
	Actual   int
	Reserved int
}

// Add merges another delta into this one.
func (d StockDelta) Add(o StockDelta) StockDelta {
	return StockDelta{Actual: d.Actual + o.Actual, Reserved: d.Reserved + o.Reserved}
}

// IsZero reports whether the delta changes nothing.
func (d StockDelta) IsZero() bool {
	return d.Actual == 0 && d.Reserved == 0
}

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	// ListAll returns the full catalogue in a stable order, for editing sessions
	ListAll(ctx context.Context) ([]entity.Product, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	// AdjustStockBatch applies signed actual/reserved adjustments to multiple
	// products in one transaction.
	AdjustStockBatch(ctx context.Context, deltas map[uuid.UUID]StockDelta) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uuid.UUID
	LowStock   bool
	SortBy     string
	SortOrder  string
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Category, error)
}
