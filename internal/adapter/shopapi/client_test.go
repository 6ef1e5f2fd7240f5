package shopapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/braginaliz/web-larek/pkg/errors"
	"github.com/braginaliz/web-larek/pkg/httpclient"

	"github.com/braginaliz/web-larek/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestClient(t *testing.T, backend http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	inner := httpclient.New(cfg)
	breaker := httpclient.NewCircuitBreakerClient(inner, httpclient.DefaultCircuitBreakerConfig("shop-api-test"), testLogger())

	return New(breaker, srv.URL+"/api", "https://cdn.example.com/content", testLogger()), srv
}

// ============================================================================
// GetAllProducts Tests
// ============================================================================

func TestGetAllProducts(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/product/", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total": 2,
			"items": []map[string]any{
				{"id": "a", "name": "Bug hunter badge", "price": 10, "category": "soft-skill", "image": "/badge.svg"},
				{"id": "b", "name": "Framework poster", "price": nil, "image": "poster.svg"},
			},
		})
	})

	products, err := client.GetAllProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "a", products[0].ID)
	require.NotNil(t, products[0].Price)
	assert.Equal(t, int64(10), *products[0].Price)
	assert.Equal(t, "https://cdn.example.com/content/badge.svg", products[0].Image)
	assert.Nil(t, products[1].Price)
	assert.Equal(t, "https://cdn.example.com/content/poster.svg", products[1].Image)
}

func TestGetAllProducts_ServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetAllProducts(context.Background())

	assert.Error(t, err)
}

// ============================================================================
// CreateOrder Tests
// ============================================================================

func TestCreateOrder(t *testing.T) {
	var received domain.Order
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/order", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "ord-1", "total": 760})
	})

	order := domain.Order{
		Payment: domain.PaymentCard,
		Email:   "user@example.com",
		Phone:   "+10000000000",
		Address: "Main St",
		Items:   []string{"a", "c"},
		Total:   760,
	}

	result, err := client.CreateOrder(context.Background(), order)

	require.NoError(t, err)
	assert.Equal(t, "ord-1", result.ID)
	assert.Equal(t, int64(760), result.Total)
	assert.Equal(t, order, received)
}

func TestCreateOrder_RejectedWithStructuredError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"code": "INVALID_INPUT", "message": "address is malformed"},
		})
	})

	_, err := client.CreateOrder(context.Background(), domain.Order{})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
