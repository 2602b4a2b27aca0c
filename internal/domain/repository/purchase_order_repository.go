package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/adelgadoq/mystock-api/internal/domain/entity"
	"github.com/adelgadoq/mystock-api/internal/domain/enum"
	"github.com/adelgadoq/mystock-api/pkg/pagination"
)

// PurchaseOrderRepository defines the interface for purchase order data operations
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	Update(ctx context.Context, order *entity.PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *PurchaseOrderFilterParams) ([]entity.PurchaseOrder, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PurchaseOrderStatus) error
	CountLines(ctx context.Context, orderID uuid.UUID) (int64, error)
}

// PurchaseOrderFilterParams contains filtering parameters for purchase order queries
type PurchaseOrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.PurchaseOrderStatus
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// PurchaseOrderLineRepository defines the interface for purchase order line data operations
type PurchaseOrderLineRepository interface {
	Create(ctx context.Context, line *entity.PurchaseOrderLine) error
	CreateBatch(ctx context.Context, lines []entity.PurchaseOrderLine) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrderLine, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.PurchaseOrderLine, error)
	Update(ctx context.Context, line *entity.PurchaseOrderLine) error
	Delete(ctx context.Context, id uuid.UUID) error
}
