package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/adelgadoq/mystock-api/internal/domain/entity"
	"github.com/adelgadoq/mystock-api/internal/domain/enum"
	"github.com/adelgadoq/mystock-api/pkg/pagination"
)

// SalesOrderRepository defines the interface for sales order data operations
type SalesOrderRepository interface {
	Create(ctx context.Context, order *entity.SalesOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error)
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error)
	Update(ctx context.Context, order *entity.SalesOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *SalesOrderFilterParams) ([]entity.SalesOrder, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SalesOrderStatus) error
	CountLines(ctx context.Context, orderID uuid.UUID) (int64, error)
}

// SalesOrderFilterParams contains filtering parameters for sales order queries
type SalesOrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.SalesOrderStatus
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// SalesOrderLineRepository defines the interface for sales order line data operations
type SalesOrderLineRepository interface {
	Create(ctx context.Context, line *entity.SalesOrderLine) error
	CreateBatch(ctx context.Context, lines []entity.SalesOrderLine) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesOrderLine, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.SalesOrderLine, error)
	Update(ctx context.Context, line *entity.SalesOrderLine) error
	Delete(ctx context.Context, id uuid.UUID) error
}
