package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go-shop/internal/products/domain"
	"go-shop/internal/products/ports"
	apperrors "go-shop/pkg/errors"
)

// ProductModel is the GORM model for products (persistence layer)
type ProductModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:200;not null"`
	Description string    `gorm:"size:1000"`
	Price       float64   `gorm:"not null"`
	Quantity    int       `gorm:"not null;default:0"`
	Category    string    `gorm:"size:100;index"`
	SKU         string    `gorm:"size:100;uniqueIndex;not null"`
	ImageURL    string    `gorm:"size:500"`
	CreatedBy   uint      `gorm:"index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// PostgresProductRepository implements ProductRepository using PostgreSQL
type PostgresProductRepository struct {
	db *gorm.DB
}

// NewPostgresProductRepository creates a new PostgreSQL product repository
func NewPostgresProductRepository(db *gorm.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

// Migrate runs auto-migration for the product model
func (r *PostgresProductRepository) Migrate() error {
	return r.db.AutoMigrate(&ProductModel{})
}

// Create creates a new product
func (r *PostgresProductRepository) Create(ctx context.Context, product *domain.Product) error {
	model := toModel(product)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return result.Error
	}

	// Update domain entity with generated ID
	product.ID = model.ID
	product.CreatedAt = model.CreatedAt
	product.UpdatedAt = model.UpdatedAt

	return nil
}

// GetByID retrieves a product by ID
func (r *PostgresProductRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var model ProductModel

	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewProductNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get product", result.Error)
	}

	return toDomain(&model), nil
}

// GetBySKU retrieves a product by SKU
func (r *PostgresProductRepository) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	var model ProductModel

	result := r.db.WithContext(ctx).Where("sku = ?", sku).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("product", sku)
		}
		return nil, apperrors.NewInternal("failed to get product by sku", result.Error)
	}

	return toDomain(&model), nil
}

// List retrieves products matching the filter
func (r *PostgresProductRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Product, error) {
	query := r.db.WithContext(ctx).Model(&ProductModel{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var models []ProductModel
	result := query.Offset(filter.Skip).Limit(filter.Limit).Order("id").Find(&models)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to list products", result.Error)
	}

	products := make([]*domain.Product, len(models))
	for i := range models {
		products[i] = toDomain(&models[i])
	}

	return products, nil
}

// Update updates an existing product
func (r *PostgresProductRepository) Update(ctx context.Context, product *domain.Product) error {
	model := toModel(product)

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return apperrors.NewInternal("failed to update product", result.Error)
	}

	product.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete deletes a product by ID
func (r *PostgresProductRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&ProductModel{}, id)
	if result.Error != nil {
		return apperrors.NewInternal("failed to delete product", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewProductNotFound(id)
	}
	return nil
}

// AdjustQuantity atomically applies a signed quantity delta. The guard in
// the WHERE clause keeps the quantity from going negative; read, validation
// and write happen in one statement so concurrent adjustments to the same
// product serialize on the row.
func (r *PostgresProductRepository) AdjustQuantity(ctx context.Context, id uint, delta int) (int, error) {
	var newQuantity int

	result := r.db.WithContext(ctx).Raw(
		`UPDATE products
		 SET quantity = quantity + ?, updated_at = ?
		 WHERE id = ? AND quantity + ? >= 0
		 RETURNING quantity`,
		delta, time.Now(), id, delta,
	).Scan(&newQuantity)
	if result.Error != nil {
		return 0, apperrors.NewInternal("failed to adjust quantity", result.Error)
	}

	if result.RowsAffected == 0 {
		// Guard rejected: missing product or insufficient stock
		var exists int64
		if err := r.db.WithContext(ctx).Model(&ProductModel{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return 0, apperrors.NewInternal("failed to adjust quantity", err)
		}
		if exists == 0 {
			return 0, domain.NewProductNotFound(id)
		}
		return 0, domain.ErrInsufficientInventory
	}

	return newQuantity, nil
}

// toModel converts a domain entity to a GORM model
func toModel(product *domain.Product) *ProductModel {
	return &ProductModel{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Quantity:    product.Quantity,
		Category:    product.Category,
		SKU:         product.SKU,
		ImageURL:    product.ImageURL,
		CreatedBy:   product.CreatedBy,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// toDomain converts a GORM model to a domain entity
func toDomain(model *ProductModel) *domain.Product {
	return &domain.Product{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Price:       model.Price,
		Quantity:    model.Quantity,
		Category:    model.Category,
		SKU:         model.SKU,
		ImageURL:    model.ImageURL,
		CreatedBy:   model.CreatedBy,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
