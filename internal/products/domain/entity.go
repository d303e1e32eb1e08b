package domain

import (
	"time"
)

// Product represents the product domain entity
type Product struct {
	ID          uint
	Name        string
	Description string
	Price       float64
	Quantity    int
	Category    string
	SKU         string
	ImageURL    string
	CreatedBy   uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate validates the product entity
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.SKU == "" {
		return ErrSKURequired
	}
	if p.Price <= 0 {
		return ErrInvalidPrice
	}
	if p.Quantity < 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// NewProduct creates a new product with validation
func NewProduct(name, description string, price float64, quantity int, category, sku, imageURL string, createdBy uint) (*Product, error) {
	now := time.Now()
	product := &Product{
		Name:        name,
		Description: description,
		Price:       price,
		Quantity:    quantity,
		Category:    category,
		SKU:         sku,
		ImageURL:    imageURL,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}
