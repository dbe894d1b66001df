package marketdata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeflow/internal/config"
	"tradeflow/internal/domain"
	"tradeflow/internal/marketdata"
)

func newClient(t *testing.T, h http.HandlerFunc) *marketdata.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return marketdata.NewClient(&config.MarketDataConfig{
		BaseURL:        srv.URL,
		APIKey:         "test-key",
		TimeoutSecs:    5,
		RequestsPerMin: 600,
	})
}

func TestClient_ShippingRate(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/shipping-rates", r.URL.Path)
		assert.Equal(t, "CN", r.URL.Query().Get("origin"))
		assert.Equal(t, "US", r.URL.Query().Get("destination"))
		assert.Equal(t, "ocean", r.URL.Query().Get("mode"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"origin":"CN","destination":"US","mode":"ocean","cost_per_kg":"1.85","currency":"USD","transit_days":28,"as_of":"2025-03-01T00:00:00Z"}`))
	})

	rate, err := c.ShippingRate(context.Background(), domain.Country("CN"), domain.CountryUS, "ocean")
	require.NoError(t, err)
	assert.Equal(t, "1.85", rate.CostPerKg.String())
	assert.Equal(t, 28, rate.TransitDays)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), rate.AsOf)
}

func TestClient_CountryRisk(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/country-risk/VN", r.URL.Path)
		_, _ = w.Write([]byte(`{"country":"VN","score":42.5,"level":"moderate","as_of":"2025-03-01T00:00:00Z"}`))
	})

	risk, err := c.CountryRisk(context.Background(), domain.Country("VN"))
	require.NoError(t, err)
	assert.Equal(t, 42.5, risk.Score)
	assert.Equal(t, "moderate", risk.Level)
}

func TestClient_NotFound(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.CountryRisk(context.Background(), domain.Country("ZZ"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_ServerError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := c.ShippingRate(context.Background(), domain.Country("CN"), domain.CountryUS, "ocean")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_CancelledContext(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.CountryRisk(ctx, domain.Country("MX"))
	assert.Error(t, err)
}
