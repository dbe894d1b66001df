package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tradeflow/internal/domain"
	"tradeflow/internal/service"
)

// MockFactorSource is a mock implementation of service.FactorSource.
type MockFactorSource struct {
	mock.Mock
}

func (m *MockFactorSource) ShippingRate(ctx context.Context, q service.ShippingQuery) (*domain.ShippingRate, domain.Freshness, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, domain.Freshness{}, args.Error(2)
	}
	return args.Get(0).(*domain.ShippingRate), args.Get(1).(domain.Freshness), args.Error(2)
}

func (m *MockFactorSource) CountryRisk(ctx context.Context, q service.RiskQuery) (*domain.CountryRisk, domain.Freshness, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, domain.Freshness{}, args.Error(2)
	}
	return args.Get(0).(*domain.CountryRisk), args.Get(1).(domain.Freshness), args.Error(2)
}

func (m *MockFactorSource) Routes(ctx context.Context, q service.InfrastructureQuery) ([]domain.TradeRoute, domain.Freshness, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, domain.Freshness{}, args.Error(2)
	}
	return args.Get(0).([]domain.TradeRoute), args.Get(1).(domain.Freshness), args.Error(2)
}

func (m *MockFactorSource) BusinessPattern(ctx context.Context, q service.PatternQuery) (*domain.BusinessPattern, domain.Freshness, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, domain.Freshness{}, args.Error(2)
	}
	return args.Get(0).(*domain.BusinessPattern), args.Get(1).(domain.Freshness), args.Error(2)
}
