package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tradeflow/internal/domain"
)

// MockMarketDataSource is a mock implementation of port.MarketDataSource.
type MockMarketDataSource struct {
	mock.Mock
}

func (m *MockMarketDataSource) ShippingRate(ctx context.Context, origin, destination domain.Country, mode string) (*domain.ShippingRate, error) {
	args := m.Called(ctx, origin, destination, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShippingRate), args.Error(1)
}

func (m *MockMarketDataSource) CountryRisk(ctx context.Context, country domain.Country) (*domain.CountryRisk, error) {
	args := m.Called(ctx, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CountryRisk), args.Error(1)
}
