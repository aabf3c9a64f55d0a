// =============================================================================
// Sales Analytics - Product API Client
// =============================================================================
//
// Client for the external product metadata API (DummyJSON-compatible). The
// pipeline tolerates this API being down: callers treat a fetch failure as
// "no enrichment", never as a run failure.
//
// =============================================================================

package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ginjaninja78/sales-analytics/internal/config"
)

// Product is one product record as returned by the API.
type Product struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Rating   float64 `json:"rating"`
}

// productsResponse is the API's list envelope.
type productsResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// Client calls the product metadata API.
type Client struct {
	BaseURL    string
	PageLimit  int
	MaxRetries int

	HTTPClient *http.Client

	// cached holds the product list from the last successful fetch, so a
	// run that consults the API more than once pays for one request.
	cached []Product
}

// NewClient creates a Client from the API settings.
func NewClient(settings config.APISettings) *Client {
	return &Client{
		BaseURL:    settings.BaseURL,
		PageLimit:  settings.PageLimit,
		MaxRetries: settings.MaxRetries,
		HTTPClient: &http.Client{
			Timeout: time.Duration(settings.TimeoutSeconds) * time.Second,
		},
	}
}

// FetchAllProducts returns the product catalog, retrying transient failures
// with a linear backoff. A successful result is cached for the lifetime of
// the client.
func (c *Client) FetchAllProducts(ctx context.Context) ([]Product, error) {
	if c.cached != nil {
		return c.cached, nil
	}

	retries := c.MaxRetries
	if retries < 1 {
		retries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		products, err := c.fetch(ctx)
		if err == nil {
			c.cached = products
			return products, nil
		}
		lastErr = err

		if attempt < retries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
	}

	return nil, fmt.Errorf("fetching products after %d attempt(s): %w", retries, lastErr)
}

// fetch performs a single catalog request.
func (c *Client) fetch(ctx context.Context) ([]Product, error) {
	url := fmt.Sprintf("%s/products?limit=%d", c.BaseURL, c.PageLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("product API returned status %d", resp.StatusCode)
	}

	var payload productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding product API response: %w", err)
	}

	return payload.Products, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}
