// Package shopapi implements the client for the shop backend: the catalog
// fetch and the order submission the session core depends on.
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/braginaliz/web-larek/internal/domain"
	"github.com/braginaliz/web-larek/pkg/httpclient"
)

// Client talks to the shop backend over HTTP through a circuit breaker.
// Product image paths are resolved against the CDN base URL.
type Client struct {
	http   *httpclient.CircuitBreakerClient
	apiURL string
	cdnURL string
	logger *slog.Logger
}

// New creates a shop API client. apiURL and cdnURL are base URLs without a
// trailing slash.
func New(http *httpclient.CircuitBreakerClient, apiURL, cdnURL string, logger *slog.Logger) *Client {
	return &Client{
		http:   http,
		apiURL: strings.TrimSuffix(apiURL, "/"),
		cdnURL: strings.TrimSuffix(cdnURL, "/"),
		logger: logger,
	}
}

// listResponse is the shop backend's list envelope.
type listResponse struct {
	Total int              `json:"total"`
	Items []productPayload `json:"items"`
}

type productPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       *int64 `json:"price"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image"`
}

// GetAllProducts fetches the full catalog. The returned products carry
// CDN-resolved image URLs.
func (c *Client) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	resp, err := c.http.Get(ctx, c.apiURL+"/product/")
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "shop api")
	}
	defer func() { _ = resp.Body.Close() }()

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode product list: %w", err)
	}

	products := make([]domain.Product, 0, len(list.Items))
	for _, item := range list.Items {
		products = append(products, domain.Product{
			ID:          item.ID,
			Name:        item.Name,
			Price:       item.Price,
			Description: item.Description,
			Category:    item.Category,
			Image:       c.imageURL(item.Image),
		})
	}

	c.logger.DebugContext(ctx, "catalog fetched",
		slog.Int("count", len(products)),
	)

	return products, nil
}

// CreateOrder submits the assembled order and returns the backend's receipt.
func (c *Client) CreateOrder(ctx context.Context, order domain.Order) (domain.OrderResult, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return domain.OrderResult{}, fmt.Errorf("encode order: %w", err)
	}

	resp, err := c.http.Post(ctx, c.apiURL+"/order", "application/json", bytes.NewReader(body))
	if err != nil {
		return domain.OrderResult{}, fmt.Errorf("submit order: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return domain.OrderResult{}, httpclient.ParseResponseError(resp, "shop api")
	}
	defer func() { _ = resp.Body.Close() }()

	var result domain.OrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.OrderResult{}, fmt.Errorf("decode order result: %w", err)
	}

	c.logger.InfoContext(ctx, "order created",
		slog.String("order_id", result.ID),
		slog.Int64("total", result.Total),
	)

	return result, nil
}

// imageURL resolves a backend image path against the CDN base URL. Absolute
// URLs pass through unchanged.
func (c *Client) imageURL(path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.cdnURL + path
}
