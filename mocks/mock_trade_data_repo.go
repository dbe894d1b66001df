package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tradeflow/internal/domain"
)

// MockTradeDataRepo is a mock implementation of port.TradeDataRepository.
type MockTradeDataRepo struct {
	mock.Mock
}

func (m *MockTradeDataRepo) FindRoutes(ctx context.Context, origin, destination domain.Country) ([]domain.TradeRoute, error) {
	args := m.Called(ctx, origin, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TradeRoute), args.Error(1)
}

func (m *MockTradeDataRepo) FindBusinessPattern(ctx context.Context, key string) (*domain.BusinessPattern, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessPattern), args.Error(1)
}
