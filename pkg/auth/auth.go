package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go-shop/pkg/errors"
	"go-shop/pkg/logger"
)

// Principal is the authenticated identity behind a request
type Principal struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// Client verifies bearer credentials against the identity service
type Client interface {
	// VerifyToken resolves a bearer token to a principal
	VerifyToken(ctx context.Context, token string) (*Principal, error)
}

// HTTPClient implements Client against the user service's /verify-token endpoint
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a new identity verifier client. A nil httpClient
// falls back to a client with a 10s timeout.
func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: baseURL,
		client:  httpClient,
	}
}

// VerifyToken calls the user service to validate the token
func (c *HTTPClient) VerifyToken(ctx context.Context, token string) (*Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/verify-token", nil)
	if err != nil {
		return nil, errors.NewInternal("failed to build verify-token request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if traceID := logger.GetTraceID(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.NewUnavailable("user service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewUnauthorized("invalid token")
	}

	var principal Principal
	if err := json.NewDecoder(resp.Body).Decode(&principal); err != nil {
		return nil, errors.NewInternal("failed to decode verify-token response", err)
	}

	return &principal, nil
}
