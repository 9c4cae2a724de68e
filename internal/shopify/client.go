// Package shopify is the client for the Shopify proxy endpoints exposed
// by the support backend. The console never talks to Shopify directly.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client talks to the backend's /shopify proxy.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New creates a commerce client rooted at baseURL (the backend base,
// not the /shopify prefix).
func New(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/shopify",
		http:    &http.Client{Timeout: 20 * time.Second},
		logger:  logger,
	}
}

// SearchCustomers looks customers up by free text, usually the
// conversation's phone number. An empty result is not an error.
func (c *Client) SearchCustomers(ctx context.Context, query string) ([]Customer, error) {
	v := url.Values{"q": {query}}
	var out []Customer
	if err := c.getJSON(ctx, "/customers/search", v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchProducts searches the product catalog.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	v := url.Values{"q": {query}}
	var out []Product
	if err := c.getJSON(ctx, "/products/search", v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Variants lists the purchasable variants of a product.
func (c *Client) Variants(ctx context.Context, productID string) ([]Variant, error) {
	var out []Variant
	if err := c.getJSON(ctx, "/products/"+url.PathEscape(productID)+"/variants", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ShippingOptions lists the available shipping rates.
func (c *Client) ShippingOptions(ctx context.Context) ([]ShippingOption, error) {
	var out []ShippingOption
	if err := c.getJSON(ctx, "/shipping-options", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateOrder submits an assembled draft. An idempotency key is
// attached so a retried submit cannot double-create the order.
func (c *Client) CreateOrder(ctx context.Context, draft Draft) (*Order, error) {
	if len(draft.Items) == 0 {
		return nil, fmt.Errorf("create order: empty cart")
	}
	data, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("encode draft: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.New().String())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		c.logger.Warn("order creation rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(snippet)))
		return nil, fmt.Errorf("create order: status %d", resp.StatusCode)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	return &order, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
