package ports

import (
	"context"

	"go-shop/internal/orders/domain"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Create persists the order header and assigns its ID
	Create(ctx context.Context, order *domain.Order) error

	// AddItem persists a single order line under its order
	AddItem(ctx context.Context, item *domain.OrderItem) error

	// GetByID retrieves an order with its items
	GetByID(ctx context.Context, id uint) (*domain.Order, error)

	// GetByUserID retrieves all orders (with items) for a user
	GetByUserID(ctx context.Context, userID uint) ([]*domain.Order, error)

	// UpdateStatus persists the order's status and updated_at
	UpdateStatus(ctx context.Context, order *domain.Order) error
}

// ProductClient defines the interface for product service communication
type ProductClient interface {
	// GetProduct retrieves a product by ID
	GetProduct(ctx context.Context, productID string) (*ProductInfo, error)

	// AdjustInventory applies a signed quantity delta and returns the new
	// quantity. The adjustment is atomic on the product service side and is
	// rejected if the resulting quantity would go negative.
	AdjustInventory(ctx context.Context, productID string, delta int) (int, error)
}

// ProductInfo represents product information from the product service
type ProductInfo struct {
	ID       string
	Name     string
	Price    float64
	Quantity int
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// PublishOrderCreated publishes an order created event
	PublishOrderCreated(ctx context.Context, order *domain.Order) error

	// PublishOrderCancelled publishes an order cancelled event
	PublishOrderCancelled(ctx context.Context, order *domain.Order) error
}
