package application

import (
	"context"
	"testing"

	"go-shop/internal/products/domain"
	"go-shop/internal/products/ports"
	"go-shop/pkg/errors"
	"go-shop/pkg/logger"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	products map[uint]*domain.Product
	nextID   uint
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[uint]*domain.Product),
		nextID:   1,
	}
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	product.ID = m.nextID
	m.nextID++
	stored := *product
	m.products[product.ID] = &stored
	return nil
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, domain.NewProductNotFound(id)
	}
	copied := *product
	return &copied, nil
}

func (m *MockProductRepository) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	for _, product := range m.products {
		if product.SKU == sku {
			copied := *product
			return &copied, nil
		}
	}
	return nil, errors.NewNotFound("product", sku)
}

func (m *MockProductRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Product, error) {
	var matched []*domain.Product
	for id := uint(1); id < m.nextID; id++ {
		product, ok := m.products[id]
		if !ok {
			continue
		}
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		if filter.MinPrice != nil && product.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && product.Price > *filter.MaxPrice {
			continue
		}
		copied := *product
		matched = append(matched, &copied)
	}
	if filter.Skip >= len(matched) {
		return nil, nil
	}
	matched = matched[filter.Skip:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := m.products[product.ID]; !ok {
		return domain.NewProductNotFound(product.ID)
	}
	stored := *product
	m.products[product.ID] = &stored
	return nil
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	if _, ok := m.products[id]; !ok {
		return domain.NewProductNotFound(id)
	}
	delete(m.products, id)
	return nil
}

func (m *MockProductRepository) AdjustQuantity(ctx context.Context, id uint, delta int) (int, error) {
	product, ok := m.products[id]
	if !ok {
		return 0, domain.NewProductNotFound(id)
	}
	if product.Quantity+delta < 0 {
		return 0, domain.ErrInsufficientInventory
	}
	product.Quantity += delta
	return product.Quantity, nil
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	created     []*domain.Product
	adjustments []int
}

func (m *MockEventPublisher) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	m.created = append(m.created, product)
	return nil
}

func (m *MockEventPublisher) PublishInventoryAdjusted(ctx context.Context, productID uint, delta, newQuantity int) error {
	m.adjustments = append(m.adjustments, delta)
	return nil
}

func newTestUseCase() (*ProductUseCase, *MockProductRepository, *MockEventPublisher) {
	repo := NewMockProductRepository()
	publisher := &MockEventPublisher{}
	log := logger.New("test", "debug")
	return NewProductUseCase(repo, publisher, log), repo, publisher
}

func seedProduct(t *testing.T, useCase *ProductUseCase, name, category, sku string, price float64, quantity int) *domain.Product {
	t.Helper()
	output, err := useCase.CreateProduct(context.Background(), CreateProductInput{
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		Category:  category,
		SKU:       sku,
		CreatedBy: 1,
	})
	if err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return output.Product
}

func TestCreateProduct_Success(t *testing.T) {
	// Arrange
	useCase, _, publisher := newTestUseCase()

	// Act
	output, err := useCase.CreateProduct(context.Background(), CreateProductInput{
		Name:      "Widget",
		Price:     9.99,
		Quantity:  10,
		Category:  "tools",
		SKU:       "WID-1",
		CreatedBy: 1,
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if output.Product.ID == 0 {
		t.Error("expected product ID to be set")
	}
	if len(publisher.created) != 1 {
		t.Errorf("expected 1 created event, got %d", len(publisher.created))
	}
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	// Arrange
	useCase, repo, _ := newTestUseCase()
	seedProduct(t, useCase, "Widget", "tools", "WID-1", 9.99, 10)

	// Act
	_, err := useCase.CreateProduct(context.Background(), CreateProductInput{
		Name:      "Widget Clone",
		Price:     4.99,
		Quantity:  3,
		SKU:       "WID-1",
		CreatedBy: 1,
	})

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if len(repo.products) != 1 {
		t.Errorf("expected 1 product, got %d", len(repo.products))
	}
}

func TestCreateProduct_InvalidPrice(t *testing.T) {
	// Arrange
	useCase, _, _ := newTestUseCase()

	// Act
	_, err := useCase.CreateProduct(context.Background(), CreateProductInput{
		Name:     "Widget",
		Price:    0,
		Quantity: 10,
		SKU:      "WID-1",
	})

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	// Arrange
	useCase, _, _ := newTestUseCase()

	// Act
	_, err := useCase.GetProduct(context.Background(), GetProductInput{ID: 999})

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestListProducts_Filters(t *testing.T) {
	// Arrange
	useCase, _, _ := newTestUseCase()
	seedProduct(t, useCase, "Widget", "tools", "WID-1", 10.0, 5)
	seedProduct(t, useCase, "Gadget", "tools", "GAD-1", 30.0, 5)
	seedProduct(t, useCase, "Mug", "kitchen", "MUG-1", 8.0, 5)

	minPrice := 9.0
	maxPrice := 20.0

	// Act
	output, err := useCase.ListProducts(context.Background(), ListProductsInput{
		Category: "tools",
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(output.Products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(output.Products))
	}
	if output.Products[0].Name != "Widget" {
		t.Errorf("expected Widget, got %s", output.Products[0].Name)
	}
}

func TestListProducts_Pagination(t *testing.T) {
	// Arrange
	useCase, _, _ := newTestUseCase()
	seedProduct(t, useCase, "A", "tools", "A-1", 10.0, 5)
	seedProduct(t, useCase, "B", "tools", "B-1", 10.0, 5)
	seedProduct(t, useCase, "C", "tools", "C-1", 10.0, 5)

	// Act
	output, err := useCase.ListProducts(context.Background(), ListProductsInput{Skip: 1, Limit: 1})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(output.Products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(output.Products))
	}
	if output.Products[0].Name != "B" {
		t.Errorf("expected B, got %s", output.Products[0].Name)
	}
}

func TestUpdateProduct_Partial(t *testing.T) {
	// Arrange
	useCase, _, _ := newTestUseCase()
	product := seedProduct(t, useCase, "Widget", "tools", "WID-1", 10.0, 5)

	newPrice := 12.5

	// Act
	output, err := useCase.UpdateProduct(context.Background(), UpdateProductInput{
		ID:    product.ID,
		Price: &newPrice,
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if output.Product.Price != 12.5 {
		t.Errorf("expected price 12.5, got %f", output.Product.Price)
	}
	if output.Product.Name != "Widget" {
		t.Errorf("expected name unchanged, got %s", output.Product.Name)
	}
}

func TestUpdateProduct_NoFields(t *testing.T) {
	// Arrange
	useCase, _, _ := newTestUseCase()
	product := seedProduct(t, useCase, "Widget", "tools", "WID-1", 10.0, 5)

	// Act
	_, err := useCase.UpdateProduct(context.Background(), UpdateProductInput{ID: product.ID})

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestAdjustInventory_Success(t *testing.T) {
	// Arrange
	useCase, repo, publisher := newTestUseCase()
	product := seedProduct(t, useCase, "Widget", "tools", "WID-1", 10.0, 5)

	// Act
	output, err := useCase.AdjustInventory(context.Background(), AdjustInventoryInput{
		ID:    product.ID,
		Delta: -3,
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if output.NewQuantity != 2 {
		t.Errorf("expected new quantity 2, got %d", output.NewQuantity)
	}
	if repo.products[product.ID].Quantity != 2 {
		t.Errorf("expected stored quantity 2, got %d", repo.products[product.ID].Quantity)
	}
	if len(publisher.adjustments) != 1 {
		t.Errorf("expected 1 adjusted event, got %d", len(publisher.adjustments))
	}
}

func TestAdjustInventory_RejectsNegativeResult(t *testing.T) {
	// Arrange
	useCase, repo, _ := newTestUseCase()
	product := seedProduct(t, useCase, "Widget", "tools", "WID-1", 10.0, 2)

	// Act
	_, err := useCase.AdjustInventory(context.Background(), AdjustInventoryInput{
		ID:    product.ID,
		Delta: -5,
	})

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if repo.products[product.ID].Quantity != 2 {
		t.Errorf("expected quantity unchanged at 2, got %d", repo.products[product.ID].Quantity)
	}
}

func TestAdjustInventory_NotFound(t *testing.T) {
	// Arrange
	useCase, _, _ := newTestUseCase()

	// Act
	_, err := useCase.AdjustInventory(context.Background(), AdjustInventoryInput{ID: 999, Delta: 1})

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestDeleteProduct_NotFound(t *testing.T) {
	// Arrange
	useCase, _, _ := newTestUseCase()

	// Act
	err := useCase.DeleteProduct(context.Background(), DeleteProductInput{ID: 999})

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}
