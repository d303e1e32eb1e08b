package domain

import (
	"time"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// Statuses lists every order status, in lifecycle order
var Statuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// allowedTransitions is the closed transition table. DELIVERED and
// CANCELLED are terminal.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// Valid reports whether s is a known status
func (s OrderStatus) Valid() bool {
	for _, status := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the transition s -> target is allowed
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if target == allowed {
			return true
		}
	}
	return false
}

// Order represents the order domain entity
type Order struct {
	ID              uint
	UserID          uint
	TotalAmount     float64
	Status          OrderStatus
	ShippingAddress string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []OrderItem
}

// OrderItem is a line of an order. Product name and price are snapshots
// taken at order-creation time and never reconciled with the catalog.
type OrderItem struct {
	ID          uint
	OrderID     uint
	ProductID   string
	ProductName string
	Quantity    int
	Price       float64
	Subtotal    float64
}

// NewOrder creates a new pending order
func NewOrder(userID uint, totalAmount float64, shippingAddress string) *Order {
	now := time.Now()
	return &Order{
		UserID:          userID,
		TotalAmount:     totalAmount,
		Status:          OrderStatusPending,
		ShippingAddress: shippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// ValidateTransition checks whether the order may move to target
func (o *Order) ValidateTransition(target OrderStatus) error {
	if !target.Valid() {
		return ErrStatusInvalid
	}
	if o.Status == OrderStatusCancelled {
		return ErrOrderCancelled
	}
	if target == OrderStatusCancelled && o.Status != OrderStatusPending {
		return ErrCancelNotPending
	}
	if !o.Status.CanTransitionTo(target) {
		return NewInvalidTransition(o.Status, target)
	}
	return nil
}

// TransitionTo validates and applies a status change
func (o *Order) TransitionTo(target OrderStatus) error {
	if err := o.ValidateTransition(target); err != nil {
		return err
	}

	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}
