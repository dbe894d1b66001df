package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tradeflow/internal/domain"
)

// MockSavingsService is a mock implementation of service.SavingsService.
type MockSavingsService struct {
	mock.Mock
}

func (m *MockSavingsService) ComputeSavings(ctx context.Context, components []domain.Component, destination domain.Country) (*domain.DestinationResult, error) {
	args := m.Called(ctx, components, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DestinationResult), args.Error(1)
}
