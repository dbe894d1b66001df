// Package marketdata fetches shipping rates and country risk scores from an
// external HTTP provider.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"tradeflow/internal/config"
	"tradeflow/internal/domain"
	"tradeflow/internal/port"
)

// maxBodyBytes caps how much of a provider response is read.
const maxBodyBytes = 1 << 20

// Client is a port.MarketDataSource backed by a JSON HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

var _ port.MarketDataSource = (*Client)(nil)

// NewClient creates a Client. A non-positive RequestsPerMin disables throttling.
func NewClient(cfg *config.MarketDataConfig) *Client {
	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerMin > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMin))
		burst = cfg.RequestsPerMin
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
		limiter: rate.NewLimiter(limit, burst),
	}
}

// ShippingRate returns the current freight quote for a lane.
func (c *Client) ShippingRate(ctx context.Context, origin, destination domain.Country, mode string) (*domain.ShippingRate, error) {
	q := url.Values{}
	q.Set("origin", string(origin))
	q.Set("destination", string(destination))
	q.Set("mode", mode)

	var out domain.ShippingRate
	if err := c.getJSON(ctx, "/v1/shipping-rates?"+q.Encode(), &out); err != nil {
		return nil, fmt.Errorf("marketdata.ShippingRate %s-%s: %w", origin, destination, err)
	}
	return &out, nil
}

// CountryRisk returns the risk score of a supplier country.
func (c *Client) CountryRisk(ctx context.Context, country domain.Country) (*domain.CountryRisk, error) {
	var out domain.CountryRisk
	if err := c.getJSON(ctx, "/v1/country-risk/"+url.PathEscape(string(country)), &out); err != nil {
		return nil, fmt.Errorf("marketdata.CountryRisk %s: %w", country, err)
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, http.NoBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
