package events

import "time"

// Exchange names
const (
	ExchangeOrders   = "orders.events"
	ExchangeProducts = "products.events"
)

// Routing keys
const (
	RoutingKeyOrderCreated      = "order.created"
	RoutingKeyOrderCancelled    = "order.cancelled"
	RoutingKeyProductCreated    = "product.created"
	RoutingKeyInventoryAdjusted = "inventory.adjusted"
)

// OrderCreatedEvent is published when an order is created
type OrderCreatedEvent struct {
	Version   string              `json:"version"`
	EventType string              `json:"event_type"`
	Timestamp time.Time           `json:"timestamp"`
	TraceID   string              `json:"trace_id"`
	Payload   OrderCreatedPayload `json:"payload"`
}

// OrderCreatedPayload contains order data
type OrderCreatedPayload struct {
	ID          uint             `json:"id"`
	UserID      uint             `json:"user_id"`
	TotalAmount float64          `json:"total_amount"`
	Status      string           `json:"status"`
	Items       []OrderItemEvent `json:"items"`
	CreatedAt   time.Time        `json:"created_at"`
}

// OrderItemEvent is a line item inside an order event
type OrderItemEvent struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(id, userID uint, total float64, status string, items []OrderItemEvent, createdAt time.Time, traceID string) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		Version:   "1.0",
		EventType: "order.created",
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload: OrderCreatedPayload{
			ID:          id,
			UserID:      userID,
			TotalAmount: total,
			Status:      status,
			Items:       items,
			CreatedAt:   createdAt,
		},
	}
}

// OrderCancelledEvent is published when a pending order is cancelled
type OrderCancelledEvent struct {
	Version   string                `json:"version"`
	EventType string                `json:"event_type"`
	Timestamp time.Time             `json:"timestamp"`
	TraceID   string                `json:"trace_id"`
	Payload   OrderCancelledPayload `json:"payload"`
}

// OrderCancelledPayload contains cancelled order data
type OrderCancelledPayload struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	CancelledAt time.Time `json:"cancelled_at"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(id, userID uint, cancelledAt time.Time, traceID string) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		Version:   "1.0",
		EventType: "order.cancelled",
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload: OrderCancelledPayload{
			ID:          id,
			UserID:      userID,
			CancelledAt: cancelledAt,
		},
	}
}

// ProductCreatedEvent is published when a product is created
type ProductCreatedEvent struct {
	Version   string                `json:"version"`
	EventType string                `json:"event_type"`
	Timestamp time.Time             `json:"timestamp"`
	TraceID   string                `json:"trace_id"`
	Payload   ProductCreatedPayload `json:"payload"`
}

// ProductCreatedPayload contains product data
type ProductCreatedPayload struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(id uint, name, sku string, price float64, quantity int, createdAt time.Time, traceID string) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		Version:   "1.0",
		EventType: "product.created",
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload: ProductCreatedPayload{
			ID:        id,
			Name:      name,
			SKU:       sku,
			Price:     price,
			Quantity:  quantity,
			CreatedAt: createdAt,
		},
	}
}

// InventoryAdjustedEvent is published when a product's quantity changes
type InventoryAdjustedEvent struct {
	Version   string                   `json:"version"`
	EventType string                   `json:"event_type"`
	Timestamp time.Time                `json:"timestamp"`
	TraceID   string                   `json:"trace_id"`
	Payload   InventoryAdjustedPayload `json:"payload"`
}

// InventoryAdjustedPayload contains the adjustment result
type InventoryAdjustedPayload struct {
	ProductID   uint `json:"product_id"`
	Delta       int  `json:"delta"`
	NewQuantity int  `json:"new_quantity"`
}

// NewInventoryAdjustedEvent creates a new InventoryAdjustedEvent
func NewInventoryAdjustedEvent(productID uint, delta, newQuantity int, traceID string) *InventoryAdjustedEvent {
	return &InventoryAdjustedEvent{
		Version:   "1.0",
		EventType: "inventory.adjusted",
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload: InventoryAdjustedPayload{
			ProductID:   productID,
			Delta:       delta,
			NewQuantity: newQuantity,
		},
	}
}
