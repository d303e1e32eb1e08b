package application

import (
	"context"
	"time"

	"go-shop/internal/products/domain"
	"go-shop/internal/products/ports"
	"go-shop/pkg/errors"
	"go-shop/pkg/logger"

	"go.uber.org/zap"
)

// ProductUseCase handles product business logic
type ProductUseCase struct {
	repo      ports.ProductRepository
	publisher ports.EventPublisher
	log       *logger.Logger
}

// NewProductUseCase creates a new product use case
func NewProductUseCase(repo ports.ProductRepository, publisher ports.EventPublisher, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// CreateProductInput represents the input for creating a product
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	Category    string
	SKU         string
	ImageURL    string
	CreatedBy   uint
}

// CreateProductOutput represents the output of creating a product
type CreateProductOutput struct {
	Product *domain.Product
}

// CreateProduct creates a new product
func (uc *ProductUseCase) CreateProduct(ctx context.Context, input CreateProductInput) (*CreateProductOutput, error) {
	// Create domain entity with validation
	product, err := domain.NewProduct(
		input.Name,
		input.Description,
		input.Price,
		input.Quantity,
		input.Category,
		input.SKU,
		input.ImageURL,
		input.CreatedBy,
	)
	if err != nil {
		return nil, err
	}

	// Check if SKU already exists
	existing, err := uc.repo.GetBySKU(ctx, product.SKU)
	if err != nil && !errors.Is(err, errors.CodeNotFound) {
		return nil, errors.NewInternal("failed to check sku existence", err)
	}
	if existing != nil {
		return nil, domain.ErrSKUExists
	}

	// Create product in repository
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, errors.NewInternal("failed to create product", err)
	}

	// Publish event (best-effort, don't fail on error)
	if uc.publisher != nil {
		if err := uc.publisher.PublishProductCreated(ctx, product); err != nil {
			uc.log.WithContext(ctx).Error("failed to publish product created event",
				zap.Error(err),
				zap.Uint("product_id", product.ID),
			)
		}
	}

	uc.log.WithContext(ctx).Info("product created",
		zap.Uint("product_id", product.ID),
		zap.String("sku", product.SKU),
	)

	return &CreateProductOutput{Product: product}, nil
}

// GetProductInput represents the input for getting a product
type GetProductInput struct {
	ID uint
}

// GetProductOutput represents the output of getting a product
type GetProductOutput struct {
	Product *domain.Product
}

// GetProduct retrieves a product by ID
func (uc *ProductUseCase) GetProduct(ctx context.Context, input GetProductInput) (*GetProductOutput, error) {
	product, err := uc.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &GetProductOutput{Product: product}, nil
}

// ListProductsInput represents the input for listing products
type ListProductsInput struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Skip     int
	Limit    int
}

// ListProductsOutput represents the output of listing products
type ListProductsOutput struct {
	Products []*domain.Product
}

// ListProducts retrieves products matching the filter
func (uc *ProductUseCase) ListProducts(ctx context.Context, input ListProductsInput) (*ListProductsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	products, err := uc.repo.List(ctx, ports.ListFilter{
		Category: input.Category,
		MinPrice: input.MinPrice,
		MaxPrice: input.MaxPrice,
		Skip:     input.Skip,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListProductsOutput{Products: products}, nil
}

// UpdateProductInput represents the input for updating a product. Nil
// fields are left unchanged.
type UpdateProductInput struct {
	ID          uint
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int
	Category    *string
	ImageURL    *string
}

// UpdateProductOutput represents the output of updating a product
type UpdateProductOutput struct {
	Product *domain.Product
}

// UpdateProduct applies a partial update to a product
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, input UpdateProductInput) (*UpdateProductOutput, error) {
	if input.Name == nil && input.Description == nil && input.Price == nil &&
		input.Quantity == nil && input.Category == nil && input.ImageURL == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}

	product, err := uc.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	product.UpdatedAt = time.Now()

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, errors.NewInternal("failed to update product", err)
	}

	return &UpdateProductOutput{Product: product}, nil
}

// AdjustInventoryInput represents the input for an inventory adjustment
type AdjustInventoryInput struct {
	ID    uint
	Delta int
}

// AdjustInventoryOutput represents the output of an inventory adjustment
type AdjustInventoryOutput struct {
	NewQuantity int
}

// AdjustInventory atomically applies a signed quantity delta. The store
// rejects adjustments that would drive the quantity negative.
func (uc *ProductUseCase) AdjustInventory(ctx context.Context, input AdjustInventoryInput) (*AdjustInventoryOutput, error) {
	newQuantity, err := uc.repo.AdjustQuantity(ctx, input.ID, input.Delta)
	if err != nil {
		return nil, err
	}

	// Publish event (best-effort, don't fail on error)
	if uc.publisher != nil {
		if err := uc.publisher.PublishInventoryAdjusted(ctx, input.ID, input.Delta, newQuantity); err != nil {
			uc.log.WithContext(ctx).Error("failed to publish inventory adjusted event",
				zap.Error(err),
				zap.Uint("product_id", input.ID),
			)
		}
	}

	uc.log.WithContext(ctx).Info("inventory adjusted",
		zap.Uint("product_id", input.ID),
		zap.Int("delta", input.Delta),
		zap.Int("new_quantity", newQuantity),
	)

	return &AdjustInventoryOutput{NewQuantity: newQuantity}, nil
}

// DeleteProductInput represents the input for deleting a product
type DeleteProductInput struct {
	ID uint
}

// DeleteProduct deletes a product by ID
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, input DeleteProductInput) error {
	if err := uc.repo.Delete(ctx, input.ID); err != nil {
		return err
	}

	uc.log.WithContext(ctx).Info("product deleted",
		zap.Uint("product_id", input.ID),
	)

	return nil
}
