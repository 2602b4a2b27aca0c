package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adelgadoq/mystock-api/internal/domain/entity"
	"github.com/adelgadoq/mystock-api/internal/domain/enum"
	domainRepo "github.com/adelgadoq/mystock-api/internal/domain/repository"
)

type salesOrderRepository struct {
	db *gorm.DB
}

// NewSalesOrderRepository creates a new sales order repository
func NewSalesOrderRepository(db *gorm.DB) domainRepo.SalesOrderRepository {
	return &salesOrderRepository{db: db}
}

func (r *salesOrderRepository) Create(ctx context.Context, order *entity.SalesOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *salesOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	var order entity.SalesOrder
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *salesOrderRepository) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	var order entity.SalesOrder
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Lines.Product").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *salesOrderRepository) Update(ctx context.Context, order *entity.SalesOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *salesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.SalesOrderLine{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.SalesOrder{}, "id = ?", id).Error
	})
}

func (r *salesOrderRepository) List(ctx context.Context, params *domainRepo.SalesOrderFilterParams) ([]entity.SalesOrder, int64, error) {
	var orders []entity.SalesOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.SalesOrder{})

	if params.Search != "" {
		query = query.Where("order_no ILIKE ? OR customer_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.StartDate != nil {
		query = query.Where("order_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("order_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Lines").
		Order(sortClause(params.SortBy, params.SortOrder,
			"order_no", "customer_name", "order_date", "status", "total", "created_at")).
		Find(&orders).Error

	return orders, total, err
}

func (r *salesOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SalesOrderStatus) error {
	return r.db.WithContext(ctx).Model(&entity.SalesOrder{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *salesOrderRepository) CountLines(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.SalesOrderLine{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	return count, err
}

type salesOrderLineRepository struct {
	db *gorm.DB
}

// NewSalesOrderLineRepository creates a new sales order line repository
func NewSalesOrderLineRepository(db *gorm.DB) domainRepo.SalesOrderLineRepository {
	return &salesOrderLineRepository{db: db}
}

func (r *salesOrderLineRepository) Create(ctx context.Context, line *entity.SalesOrderLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *salesOrderLineRepository) CreateBatch(ctx context.Context, lines []entity.SalesOrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *salesOrderLineRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesOrderLine, error) {
	var line entity.SalesOrderLine
	err := r.db.WithContext(ctx).First(&line, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &line, err
}

func (r *salesOrderLineRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.SalesOrderLine, error) {
	var lines []entity.SalesOrderLine
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&lines).Error
	return lines, err
}

func (r *salesOrderLineRepository) Update(ctx context.Context, line *entity.SalesOrderLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

func (r *salesOrderLineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.SalesOrderLine{}, "id = ?", id).Error
}
