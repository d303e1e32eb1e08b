package ports

import (
	"context"

	"go-shop/internal/products/domain"
)

// ListFilter narrows and pages product listings
type ListFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Skip     int
	Limit    int
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id uint) (*domain.Product, error)

	// GetBySKU retrieves a product by SKU
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)

	// List retrieves products matching the filter
	List(ctx context.Context, filter ListFilter) ([]*domain.Product, error)

	// Update updates an existing product
	Update(ctx context.Context, product *domain.Product) error

	// Delete deletes a product by ID
	Delete(ctx context.Context, id uint) error

	// AdjustQuantity atomically applies a signed quantity delta and returns
	// the new quantity. The adjustment is rejected if the resulting quantity
	// would go negative.
	AdjustQuantity(ctx context.Context, id uint, delta int) (int, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// PublishProductCreated publishes a product created event
	PublishProductCreated(ctx context.Context, product *domain.Product) error

	// PublishInventoryAdjusted publishes an inventory adjusted event
	PublishInventoryAdjusted(ctx context.Context, productID uint, delta, newQuantity int) error
}
