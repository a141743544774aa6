package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stylekart/internal/config"
	"stylekart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func newTestClient(t *testing.T, handler http.Handler, token string, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.APIConfig{BaseURL: server.URL, Timeout: 5 * time.Second}
	payment := config.PaymentConfig{Timeout: 2 * time.Second, MaxRetries: 2}
	return NewClient(cfg, payment, staticToken(token), zerolog.Nop(), opts...)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotCorrelation string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCorrelation = r.Header.Get("X-Correlation-ID")
		w.Write([]byte(`[]`))
	})

	client := newTestClient(t, handler, "tok123")
	_, err := client.ListAddresses(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.NotEmpty(t, gotCorrelation)
}

func TestClient_NoAuthHeaderWhenSignedOut(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	client := newTestClient(t, handler, "")
	_, err := client.ListProducts(context.Background())
	require.NoError(t, err)

	assert.Empty(t, gotAuth)
}

func TestClient_UnauthorizedTriggersTeardown(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	tornDown := false
	client := newTestClient(t, handler, "stale", WithOnUnauthorized(func() { tornDown = true }))

	_, err := client.ListAddresses(context.Background())
	assert.ErrorIs(t, err, model.ErrUnauthorised)
	assert.True(t, tornDown)
}

func TestClient_StatusErrorCarriesBackendMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "minimum purchase not met"}`))
	})

	client := newTestClient(t, handler, "")
	_, err := client.AvailableCoupons(context.Background())

	var status *StatusError
	require.ErrorAs(t, err, &status)
	assert.Equal(t, http.StatusBadRequest, status.Code)
	assert.Equal(t, "minimum purchase not met", status.Message)
}

func TestListProducts_NormalizesDuckTypedDocuments(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"_id": "abc", "name": "Shirt", "price": "49.90", "thumbImage": ["t1.jpg", "t2.jpg"]},
			{"id": "def", "name": "Hat", "price": 15, "thumbImage": "hat.jpg"}
		]`))
	})

	client := newTestClient(t, handler, "")
	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "abc", products[0].ID)
	assert.Equal(t, 49.90, products[0].Price)
	assert.Equal(t, "t1.jpg", products[0].ThumbImage)
	assert.Equal(t, "def", products[1].ID)
	assert.Equal(t, "hat.jpg", products[1].ThumbImage)
}

func TestValidateCoupon_StructuredInvalidIsNotAnError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"valid": false, "message": "expired"}`))
	})

	client := newTestClient(t, handler, "")
	verdict, err := client.ValidateCoupon(context.Background(), "OLD10", 100, nil)
	require.NoError(t, err)

	assert.False(t, verdict.Valid)
	assert.Equal(t, "expired", verdict.Message)
}

func TestBulkUpdateInventory_ReturnsPerItemResults(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [
			{"productId": "P1", "size": "M", "color": "Black", "success": true},
			{"productId": "P2", "size": "L", "color": "White", "success": false, "message": "unknown variation"}
		]}`))
	})

	client := newTestClient(t, handler, "admin")
	results, err := client.BulkUpdateInventory(context.Background(), []model.InventoryUpdate{
		{ProductID: "P1", Size: "M", Color: "Black", Stock: 5},
		{ProductID: "P2", Size: "L", Color: "White", Stock: 9},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
}
