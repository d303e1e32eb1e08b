package application

import (
	"context"

	"go-shop/internal/orders/domain"
	"go-shop/internal/orders/ports"
	"go-shop/pkg/errors"
	"go-shop/pkg/logger"

	"go.uber.org/zap"
)

// OrderUseCase orchestrates the order workflow across the order store and
// the product/inventory service
type OrderUseCase struct {
	repo      ports.OrderRepository
	products  ports.ProductClient
	publisher ports.EventPublisher
	log       *logger.Logger
}

// NewOrderUseCase creates a new order use case
func NewOrderUseCase(
	repo ports.OrderRepository,
	products ports.ProductClient,
	publisher ports.EventPublisher,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		repo:      repo,
		products:  products,
		publisher: publisher,
		log:       log,
	}
}

// OrderItemInput is a requested order line
type OrderItemInput struct {
	ProductID string
	Quantity  int
}

// CreateOrderInput represents the input for creating an order
type CreateOrderInput struct {
	UserID          uint
	Items           []OrderItemInput
	ShippingAddress string
}

// CreateOrderOutput represents the output of creating an order
type CreateOrderOutput struct {
	Order *domain.Order
}

// CreateOrder runs the order-placement workflow: snapshot and validate every
// requested line against the product service, persist the order header, then
// persist each line and decrement its inventory.
//
// There is no transaction spanning the two stores. A failed inventory
// decrement mid-way fails the request but leaves the order row, the lines
// persisted so far, and the earlier decrements in place.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderOutput, error) {
	if len(input.Items) == 0 {
		return nil, domain.ErrItemsRequired
	}
	if input.ShippingAddress == "" {
		return nil, domain.ErrAddressRequired
	}

	// Phase 1: read-only pass over the catalog, snapshotting price and name
	// per line. Nothing is reserved yet, so any failure here is a clean abort.
	var totalAmount float64
	items := make([]domain.OrderItem, 0, len(input.Items))

	for _, in := range input.Items {
		if in.Quantity <= 0 {
			return nil, domain.ErrQuantityInvalid
		}

		product, err := uc.products.GetProduct(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}

		if product.Quantity < in.Quantity {
			return nil, domain.NewInsufficientInventory(product.Name)
		}

		subtotal := product.Price * float64(in.Quantity)
		totalAmount += subtotal

		items = append(items, domain.OrderItem{
			ProductID:   in.ProductID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			Price:       product.Price,
			Subtotal:    subtotal,
		})
	}

	// Phase 2: persist the header. Inventory is untouched so far.
	order := domain.NewOrder(input.UserID, totalAmount, input.ShippingAddress)
	if err := uc.repo.Create(ctx, order); err != nil {
		return nil, errors.NewInternal("failed to create order", err)
	}

	// Phase 3: persist each line and decrement its inventory, in input
	// order. Decrements already applied are not compensated on failure.
	for i := range items {
		items[i].OrderID = order.ID
		if err := uc.repo.AddItem(ctx, &items[i]); err != nil {
			return nil, errors.NewInternal("failed to create order item", err)
		}

		if _, err := uc.products.AdjustInventory(ctx, items[i].ProductID, -items[i].Quantity); err != nil {
			uc.log.WithContext(ctx).Error("inventory decrement failed mid-order",
				zap.Error(err),
				zap.Uint("order_id", order.ID),
				zap.String("product_id", items[i].ProductID),
			)
			return nil, err
		}

		order.Items = append(order.Items, items[i])
	}

	// Publish event (best-effort, don't fail on error)
	if uc.publisher != nil {
		if err := uc.publisher.PublishOrderCreated(ctx, order); err != nil {
			uc.log.WithContext(ctx).Error("failed to publish order created event",
				zap.Error(err),
				zap.Uint("order_id", order.ID),
			)
		}
	}

	uc.log.WithContext(ctx).Info("order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", order.UserID),
		zap.Float64("total_amount", order.TotalAmount),
		zap.Int("items", len(order.Items)),
	)

	return &CreateOrderOutput{Order: order}, nil
}

// GetOrderInput represents the input for getting an order
type GetOrderInput struct {
	ID     uint
	UserID uint
}

// GetOrderOutput represents the output of getting an order
type GetOrderOutput struct {
	Order *domain.Order
}

// GetOrder retrieves an order by ID, scoped to the requesting user.
// Another user's order is indistinguishable from a missing one.
func (uc *OrderUseCase) GetOrder(ctx context.Context, input GetOrderInput) (*GetOrderOutput, error) {
	order, err := uc.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if order.UserID != input.UserID {
		return nil, domain.NewOrderNotFound(input.ID)
	}

	return &GetOrderOutput{Order: order}, nil
}

// ListOrdersInput represents the input for listing orders
type ListOrdersInput struct {
	UserID uint
}

// ListOrdersOutput represents the output of listing orders
type ListOrdersOutput struct {
	Orders []*domain.Order
}

// ListOrders retrieves the requesting user's orders
func (uc *OrderUseCase) ListOrders(ctx context.Context, input ListOrdersInput) (*ListOrdersOutput, error) {
	orders, err := uc.repo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &ListOrdersOutput{Orders: orders}, nil
}

// UpdateStatusInput represents the input for a status transition
type UpdateStatusInput struct {
	ID     uint
	Status domain.OrderStatus
}

// UpdateStatusOutput represents the output of a status transition
type UpdateStatusOutput struct {
	Order *domain.Order
}

// UpdateStatus transitions an order per the status state machine. A
// transition to CANCELLED first restores inventory for every line; if any
// restoration fails the order stays PENDING, so the cancellation can be
// retried (restores already applied in the failed attempt are not undone).
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*UpdateStatusOutput, error) {
	order, err := uc.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := order.ValidateTransition(input.Status); err != nil {
		return nil, err
	}

	if input.Status == domain.OrderStatusCancelled {
		for _, item := range order.Items {
			if _, err := uc.products.AdjustInventory(ctx, item.ProductID, item.Quantity); err != nil {
				uc.log.WithContext(ctx).Error("inventory restore failed, cancellation aborted",
					zap.Error(err),
					zap.Uint("order_id", order.ID),
					zap.String("product_id", item.ProductID),
				)
				return nil, err
			}
		}
	}

	if err := order.TransitionTo(input.Status); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStatus(ctx, order); err != nil {
		return nil, errors.NewInternal("failed to update order status", err)
	}

	if input.Status == domain.OrderStatusCancelled && uc.publisher != nil {
		if err := uc.publisher.PublishOrderCancelled(ctx, order); err != nil {
			uc.log.WithContext(ctx).Error("failed to publish order cancelled event",
				zap.Error(err),
				zap.Uint("order_id", order.ID),
			)
		}
	}

	uc.log.WithContext(ctx).Info("order status updated",
		zap.Uint("order_id", order.ID),
		zap.String("status", string(order.Status)),
	)

	return &UpdateStatusOutput{Order: order}, nil
}

// StatsInput represents the input for the stats summary
type StatsInput struct {
	UserID uint
}

// StatsOutput is the per-user order summary. StatusBreakdown always carries
// all five statuses, zero if unused.
type StatsOutput struct {
	TotalOrders     int
	TotalSpent      float64
	StatusBreakdown map[domain.OrderStatus]int
}

// GetStats aggregates the requesting user's orders
func (uc *OrderUseCase) GetStats(ctx context.Context, input StatsInput) (*StatsOutput, error) {
	orders, err := uc.repo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	breakdown := make(map[domain.OrderStatus]int, len(domain.Statuses))
	for _, status := range domain.Statuses {
		breakdown[status] = 0
	}

	var totalSpent float64
	for _, order := range orders {
		totalSpent += order.TotalAmount
		breakdown[order.Status]++
	}

	return &StatsOutput{
		TotalOrders:     len(orders),
		TotalSpent:      totalSpent,
		StatusBreakdown: breakdown,
	}, nil
}
