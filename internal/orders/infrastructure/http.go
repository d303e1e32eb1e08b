package infrastructure

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go-shop/internal/orders/application"
	"go-shop/internal/orders/domain"
	"go-shop/pkg/errors"
	"go-shop/pkg/middleware"
)

// HTTPHandler handles HTTP requests for orders
type HTTPHandler struct {
	useCase *application.OrderUseCase
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.OrderUseCase) *HTTPHandler {
	return &HTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the order routes. All routes require an
// authenticated principal.
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup, auth gin.HandlerFunc) {
	orders := r.Group("/orders")
	orders.Use(auth)
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PATCH("/:id/status", h.UpdateStatus)
		orders.GET("/stats/summary", h.GetStats)
	}
}

// OrderItemRequest is a requested order line
type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest is the request body for creating an order
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingAddress string             `json:"shipping_address" binding:"required"`
}

// UpdateStatusRequest is the request body for a status transition
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderItemResponse is an order line in responses
type OrderItemResponse struct {
	ID          uint    `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
}

// OrderResponse is the response body for order operations
type OrderResponse struct {
	ID              uint                `json:"id"`
	UserID          uint                `json:"user_id"`
	TotalAmount     float64             `json:"total_amount"`
	Status          string              `json:"status"`
	ShippingAddress string              `json:"shipping_address"`
	CreatedAt       string              `json:"created_at"`
	UpdatedAt       string              `json:"updated_at"`
	Items           []OrderItemResponse `json:"items"`
}

// CreateOrder handles POST /orders
func (h *HTTPHandler) CreateOrder(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.Error(errors.NewUnauthorized("missing principal"))
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	items := make([]application.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = application.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	output, err := h.useCase.CreateOrder(c.Request.Context(), application.CreateOrderInput{
		UserID:          principal.UserID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data":     toOrderResponse(output.Order),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// ListOrders handles GET /orders
func (h *HTTPHandler) ListOrders(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.Error(errors.NewUnauthorized("missing principal"))
		return
	}

	output, err := h.useCase.ListOrders(c.Request.Context(), application.ListOrdersInput{
		UserID: principal.UserID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	responses := make([]OrderResponse, len(output.Orders))
	for i, order := range output.Orders {
		responses[i] = toOrderResponse(order)
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     responses,
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// GetOrder handles GET /orders/:id
func (h *HTTPHandler) GetOrder(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.Error(errors.NewUnauthorized("missing principal"))
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.Error(errors.NewValidation("invalid order id", nil))
		return
	}

	output, err := h.useCase.GetOrder(c.Request.Context(), application.GetOrderInput{
		ID:     id,
		UserID: principal.UserID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     toOrderResponse(output.Order),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// UpdateStatus handles PATCH /orders/:id/status
func (h *HTTPHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.Error(errors.NewValidation("invalid order id", nil))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	output, err := h.useCase.UpdateStatus(c.Request.Context(), application.UpdateStatusInput{
		ID:     id,
		Status: domain.OrderStatus(req.Status),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message":    "Order status updated",
			"new_status": string(output.Order.Status),
		},
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// StatsResponse is the response body for the stats summary
type StatsResponse struct {
	TotalOrders          int            `json:"total_orders"`
	TotalSpent           float64        `json:"total_spent"`
	OrderStatusBreakdown map[string]int `json:"order_status_breakdown"`
}

// GetStats handles GET /orders/stats/summary
func (h *HTTPHandler) GetStats(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.Error(errors.NewUnauthorized("missing principal"))
		return
	}

	output, err := h.useCase.GetStats(c.Request.Context(), application.StatsInput{
		UserID: principal.UserID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	breakdown := make(map[string]int, len(output.StatusBreakdown))
	for status, count := range output.StatusBreakdown {
		breakdown[string(status)] = count
	}

	c.JSON(http.StatusOK, gin.H{
		"data": StatsResponse{
			TotalOrders:          output.TotalOrders,
			TotalSpent:           output.TotalSpent,
			OrderStatusBreakdown: breakdown,
		},
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

func toOrderResponse(order *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    item.Subtotal,
		}
	}

	return OrderResponse{
		ID:              order.ID,
		UserID:          order.UserID,
		TotalAmount:     order.TotalAmount,
		Status:          string(order.Status),
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       order.UpdatedAt.Format(time.RFC3339),
		Items:           items,
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
