package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tradeflow/internal/domain"
	"tradeflow/internal/service"
)

// MockRateService is a mock implementation of service.RateService.
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) GetRates(ctx context.Context, hsCode string, origin, destination domain.Country) (*domain.RateLookupResult, error) {
	args := m.Called(ctx, hsCode, origin, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateLookupResult), args.Error(1)
}

func (m *MockRateService) BaseRates(ctx context.Context, hsCode string, destination domain.Country) (*domain.RateLookupResult, error) {
	args := m.Called(ctx, hsCode, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateLookupResult), args.Error(1)
}

func (m *MockRateService) PolicyOverlays(ctx context.Context, hsCode string, origin, destination domain.Country) ([]domain.PolicyAdjustment, error) {
	args := m.Called(ctx, hsCode, origin, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PolicyAdjustment), args.Error(1)
}

// MockRateSource is a mock implementation of service.RateSource.
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) TariffRates(ctx context.Context, q service.TariffRateQuery) (*domain.RateLookupResult, domain.Freshness, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, domain.Freshness{}, args.Error(2)
	}
	return args.Get(0).(*domain.RateLookupResult), args.Get(1).(domain.Freshness), args.Error(2)
}
