package domain

import "go-shop/pkg/errors"

// Domain-specific errors
var (
	ErrNameRequired          = errors.NewValidation("name is required", nil)
	ErrSKURequired           = errors.NewValidation("sku is required", nil)
	ErrInvalidPrice          = errors.NewValidation("price must be greater than 0", nil)
	ErrInvalidQuantity       = errors.NewValidation("quantity cannot be negative", nil)
	ErrSKUExists             = errors.NewValidation("product with this SKU already exists", nil)
	ErrNoFieldsToUpdate      = errors.NewValidation("no fields to update", nil)
	ErrInsufficientInventory = errors.NewValidation("insufficient inventory", nil)
)

// NewProductNotFound creates a not found error with the product ID
func NewProductNotFound(id uint) error {
	return errors.NewNotFound("product", id)
}
