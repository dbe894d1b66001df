package port

import (
	"context"

	"tradeflow/internal/domain"
)

// MarketDataSource fetches volatile market data from an external provider.
type MarketDataSource interface {
	ShippingRate(ctx context.Context, origin, destination domain.Country, mode string) (*domain.ShippingRate, error)
	CountryRisk(ctx context.Context, country domain.Country) (*domain.CountryRisk, error)
}
