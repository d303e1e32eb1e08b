package domain

import (
	"fmt"

	"go-shop/pkg/errors"
)

// Domain-specific errors
var (
	ErrItemsRequired    = errors.NewValidation("order must contain at least one item", nil)
	ErrQuantityInvalid  = errors.NewValidation("item quantity must be greater than 0", nil)
	ErrAddressRequired  = errors.NewValidation("shipping_address is required", nil)
	ErrOrderCancelled   = errors.NewInvalidTransition("cannot update cancelled order")
	ErrCancelNotPending = errors.NewInvalidTransition("only pending orders may be cancelled")
	ErrStatusInvalid    = errors.NewValidation("unknown order status", nil)
)

// NewOrderNotFound creates a not found error with the order ID
func NewOrderNotFound(id uint) error {
	return errors.NewNotFound("order", id)
}

// NewProductNotFound creates a not found error with the product ID
func NewProductNotFound(id string) error {
	return errors.NewNotFound("product", id)
}

// NewInsufficientInventory creates a validation error for a product that
// cannot cover the requested quantity
func NewInsufficientInventory(productName string) error {
	return errors.NewValidation(
		fmt.Sprintf("insufficient inventory for product %s", productName), nil)
}

// NewInvalidTransition creates an invalid transition error for the pair
func NewInvalidTransition(from, to OrderStatus) error {
	return errors.NewInvalidTransition(
		fmt.Sprintf("cannot transition order from %s to %s", from, to))
}
