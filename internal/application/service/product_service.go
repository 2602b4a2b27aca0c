package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adelgadoq/mystock-api/internal/domain/entity"
	"github.com/adelgadoq/mystock-api/internal/domain/pricing"
	"github.com/adelgadoq/mystock-api/internal/domain/repository"
	"github.com/adelgadoq/mystock-api/internal/domain/stock"
	"github.com/adelgadoq/mystock-api/pkg/apperror"
	"github.com/adelgadoq/mystock-api/pkg/pagination"
	"github.com/adelgadoq/mystock-api/pkg/utils"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateProductInput represents the create product input. Numeric fields
// arrive as raw strings so the permissive parse/validate pipeline can keep
// the raw value next to its validity.
type CreateProductInput struct {
	CategoryID       *uuid.UUID
	Code             string
	Name             string
	ActualQuantity   string
	ReservedQuantity string
	MinimumStock     string
	PurchasePrice    string
	SalePrice        string
	Notes            *string
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	// Auto-generate code if not provided
	code := input.Code
	if code == "" {
		code = utils.GenerateProductCode()
	}

	existing, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product code already exists")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	fields, fieldErrs := parseStockFields(input.ActualQuantity, input.ReservedQuantity,
		input.MinimumStock, input.PurchasePrice, input.SalePrice)
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	product := &entity.Product{
		CategoryID:       input.CategoryID,
		Code:             code,
		Name:             input.Name,
		ActualQuantity:   fields.actual,
		ReservedQuantity: fields.reserved,
		MinimumStock:     fields.minimum,
		Notes:            input.Notes,
	}
	product.SetPurchasePriceFromDecimal(fields.purchasePrice)
	product.SetSalePriceFromDecimal(fields.salePrice)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ProductID        uuid.UUID
	CategoryID       *uuid.UUID
	ClearCategory    bool
	Code             *string
	Name             *string
	ActualQuantity   *string
	ReservedQuantity *string
	MinimumStock     *string
	PurchasePrice    *string
	SalePrice        *string
	Notes            *string
}

// UpdateProduct updates a product. Stock and price fields go through the
// same validation as creation: negative values reject the whole update,
// while an over-reservation resulting from the new quantities is carried
// back to the caller as a warning on the updated product.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Code != nil && *input.Code != product.Code {
		existing, err := s.productRepo.GetByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, apperror.NewConflictError("Product code already exists")
		}
		product.Code = *input.Code
	}

	if input.ClearCategory {
		product.CategoryID = nil
	} else if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		product.CategoryID = input.CategoryID
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Notes != nil {
		product.Notes = input.Notes
	}

	var fieldErrs []apperror.FieldError
	assignInt := func(field string, raw *string, dst *int) {
		if raw == nil {
			return
		}
		v, ferr := stock.ValidateNonNegative(field, *raw)
		if ferr != nil {
			fieldErrs = append(fieldErrs, *ferr)
			return
		}
		*dst = int(v.IntPart())
	}
	assignInt("actual_quantity", input.ActualQuantity, &product.ActualQuantity)
	assignInt("reserved_quantity", input.ReservedQuantity, &product.ReservedQuantity)
	assignInt("minimum_stock", input.MinimumStock, &product.MinimumStock)

	if input.PurchasePrice != nil {
		v, ferr := stock.ValidateNonNegative("purchase_price", *input.PurchasePrice)
		if ferr != nil {
			fieldErrs = append(fieldErrs, *ferr)
		} else {
			product.SetPurchasePriceFromDecimal(v)
		}
	}
	if input.SalePrice != nil {
		v, ferr := stock.ValidateNonNegative("sale_price", *input.SalePrice)
		if ferr != nil {
			fieldErrs = append(fieldErrs, *ferr)
		} else {
			product.SetSalePriceFromDecimal(v)
		}
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, product.ID)
}

// GetLowStockProducts returns products at or below their minimum stock
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// GetMargin computes the profit margin for a product from its stored
// purchase and sale prices.
func (s *ProductService) GetMargin(ctx context.Context, id uuid.UUID) (*pricing.Margin, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	m := pricing.ComputeMargin(product.PurchasePriceDecimal(), product.SalePriceDecimal())
	return &m, nil
}

// PreviewMargin computes a margin from raw price inputs without touching
// any product, for live form feedback.
func (s *ProductService) PreviewMargin(purchasePrice, salePrice string) pricing.Margin {
	return pricing.ComputeMargin(stock.ParseNumber(purchasePrice), stock.ParseNumber(salePrice))
}

// StockWarnings returns the non-blocking conditions on a product's current
// quantities: low stock and over-reservation. Both are advisory.
func (s *ProductService) StockWarnings(product *entity.Product) []apperror.FieldError {
	var warnings []apperror.FieldError
	if ferr := stock.ValidateReservedAgainstActual(product.ActualQuantity, product.ReservedQuantity); ferr != nil {
		warnings = append(warnings, *ferr)
	}
	if product.IsLowStock() {
		warnings = append(warnings, *apperror.NewFieldError("actual_quantity", "low_stock",
			fmt.Sprintf("stock is at or below the minimum of %d", product.MinimumStock)))
	}
	return warnings
}

type stockFields struct {
	actual        int
	reserved      int
	minimum       int
	purchasePrice decimal.Decimal
	salePrice     decimal.Decimal
}

func parseStockFields(actual, reserved, minimum, purchasePrice, salePrice string) (stockFields, []apperror.FieldError) {
	var out stockFields
	var errs []apperror.FieldError

	parseInt := func(field, raw string, dst *int) {
		v, ferr := stock.ValidateNonNegative(field, raw)
		if ferr != nil {
			errs = append(errs, *ferr)
			return
		}
		*dst = int(v.IntPart())
	}
	parseInt("actual_quantity", actual, &out.actual)
	parseInt("reserved_quantity", reserved, &out.reserved)
	parseInt("minimum_stock", minimum, &out.minimum)

	parsePrice := func(field, raw string, dst *decimal.Decimal) {
		v, ferr := stock.ValidateNonNegative(field, raw)
		if ferr != nil {
			errs = append(errs, *ferr)
			return
		}
		*dst = v
	}
	parsePrice("purchase_price", purchasePrice, &out.purchasePrice)
	parsePrice("sale_price", salePrice, &out.salePrice)

	return out, errs
}
