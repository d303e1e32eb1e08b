package infrastructure

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go-shop/internal/products/application"
	"go-shop/internal/products/domain"
	"go-shop/pkg/errors"
	"go-shop/pkg/middleware"
)

// HTTPHandler handles HTTP requests for products
type HTTPHandler struct {
	useCase *application.ProductUseCase
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.ProductUseCase) *HTTPHandler {
	return &HTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the product routes. Reads and the inventory
// adjustment primitive are unauthenticated (the latter is called
// service-to-service by the order workflow); catalog mutations require a
// principal.
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup, auth gin.HandlerFunc) {
	products := r.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.PATCH("/:id/inventory", h.AdjustInventory)

		products.POST("", auth, h.CreateProduct)
		products.PUT("/:id", auth, h.UpdateProduct)
		products.DELETE("/:id", auth, h.DeleteProduct)
	}
}

// CreateProductRequest is the request body for creating a product
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Quantity    int     `json:"quantity" binding:"gte=0"`
	Category    string  `json:"category"`
	SKU         string  `json:"sku" binding:"required"`
	ImageURL    string  `json:"image_url"`
}

// UpdateProductRequest is the request body for a partial product update
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"image_url"`
}

// ProductResponse is the response body for product operations
type ProductResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Category    string  `json:"category"`
	SKU         string  `json:"sku"`
	ImageURL    string  `json:"image_url,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// CreateProduct handles POST /products
func (h *HTTPHandler) CreateProduct(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.Error(errors.NewUnauthorized("missing principal"))
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	output, err := h.useCase.CreateProduct(c.Request.Context(), application.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
		SKU:         req.SKU,
		ImageURL:    req.ImageURL,
		CreatedBy:   principal.UserID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data":     toProductResponse(output.Product),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// ListProducts handles GET /products
func (h *HTTPHandler) ListProducts(c *gin.Context) {
	input := application.ListProductsInput{
		Category: c.Query("category"),
	}

	if v := c.Query("min_price"); v != "" {
		minPrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.Error(errors.NewValidation("invalid min_price", nil))
			return
		}
		input.MinPrice = &minPrice
	}
	if v := c.Query("max_price"); v != "" {
		maxPrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.Error(errors.NewValidation("invalid max_price", nil))
			return
		}
		input.MaxPrice = &maxPrice
	}
	if v := c.Query("skip"); v != "" {
		skip, err := strconv.Atoi(v)
		if err != nil || skip < 0 {
			c.Error(errors.NewValidation("invalid skip", nil))
			return
		}
		input.Skip = skip
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			c.Error(errors.NewValidation("invalid limit", nil))
			return
		}
		input.Limit = limit
	}

	output, err := h.useCase.ListProducts(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	responses := make([]ProductResponse, len(output.Products))
	for i, product := range output.Products {
		responses[i] = toProductResponse(product)
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     responses,
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// GetProduct handles GET /products/:id
func (h *HTTPHandler) GetProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.Error(errors.NewValidation("invalid product id", nil))
		return
	}

	output, err := h.useCase.GetProduct(c.Request.Context(), application.GetProductInput{ID: id})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     toProductResponse(output.Product),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// UpdateProduct handles PUT /products/:id
func (h *HTTPHandler) UpdateProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.Error(errors.NewValidation("invalid product id", nil))
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	output, err := h.useCase.UpdateProduct(c.Request.Context(), application.UpdateProductInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     toProductResponse(output.Product),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// AdjustInventory handles PATCH /products/:id/inventory
func (h *HTTPHandler) AdjustInventory(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.Error(errors.NewValidation("invalid product id", nil))
		return
	}

	raw := c.Query("quantity_change")
	if raw == "" {
		c.Error(errors.NewValidation("quantity_change is required", nil))
		return
	}
	delta, err := strconv.Atoi(raw)
	if err != nil {
		c.Error(errors.NewValidation("invalid quantity_change", nil))
		return
	}

	output, err := h.useCase.AdjustInventory(c.Request.Context(), application.AdjustInventoryInput{
		ID:    id,
		Delta: delta,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message":      "Inventory updated",
			"new_quantity": output.NewQuantity,
		},
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// DeleteProduct handles DELETE /products/:id
func (h *HTTPHandler) DeleteProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.Error(errors.NewValidation("invalid product id", nil))
		return
	}

	if err := h.useCase.DeleteProduct(c.Request.Context(), application.DeleteProductInput{ID: id}); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Product deleted successfully",
		},
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

func toProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Quantity:    product.Quantity,
		Category:    product.Category,
		SKU:         product.SKU,
		ImageURL:    product.ImageURL,
		CreatedAt:   product.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   product.UpdatedAt.Format(time.RFC3339),
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
