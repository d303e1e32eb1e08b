package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go-shop/internal/orders/domain"
	"go-shop/internal/orders/ports"
	"go-shop/pkg/errors"
	"go-shop/pkg/logger"
)

// HTTPProductClient implements ProductClient against the product service's
// REST API
type HTTPProductClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProductClient creates a new product service client. A nil
// httpClient falls back to a client with a 10s timeout.
func NewHTTPProductClient(baseURL string, httpClient *http.Client) *HTTPProductClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPProductClient{
		baseURL: baseURL,
		client:  httpClient,
	}
}

type productResponse struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type adjustResponse struct {
	Message     string `json:"message"`
	NewQuantity int    `json:"new_quantity"`
}

// GetProduct retrieves a product by ID
func (c *HTTPProductClient) GetProduct(ctx context.Context, productID string) (*ports.ProductInfo, error) {
	endpoint := fmt.Sprintf("%s/products/%s", c.baseURL, url.PathEscape(productID))

	resp, err := c.do(ctx, http.MethodGet, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.NewProductNotFound(productID)
	default:
		return nil, errors.NewInternal(
			fmt.Sprintf("product lookup returned status %d", resp.StatusCode), nil)
	}

	var body struct {
		Data productResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.NewInternal("failed to decode product response", err)
	}

	return &ports.ProductInfo{
		ID:       productID,
		Name:     body.Data.Name,
		Price:    body.Data.Price,
		Quantity: body.Data.Quantity,
	}, nil
}

// AdjustInventory applies a signed quantity delta
func (c *HTTPProductClient) AdjustInventory(ctx context.Context, productID string, delta int) (int, error) {
	endpoint := fmt.Sprintf("%s/products/%s/inventory?quantity_change=%d",
		c.baseURL, url.PathEscape(productID), delta)

	resp, err := c.do(ctx, http.MethodPatch, endpoint)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errors.NewInternal(
			fmt.Sprintf("failed to update inventory: status %d", resp.StatusCode), nil)
	}

	var body struct {
		Data adjustResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, errors.NewInternal("failed to decode inventory response", err)
	}

	return body.Data.NewQuantity, nil
}

func (c *HTTPProductClient) do(ctx context.Context, method, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, errors.NewInternal("failed to build product service request", err)
	}
	if traceID := logger.GetTraceID(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.NewUnavailable("product service", err)
	}
	return resp, nil
}
