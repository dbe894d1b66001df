package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tradeflow/internal/domain"
	"tradeflow/internal/service"
)

// MockComparisonService is a mock implementation of service.ComparisonService.
type MockComparisonService struct {
	mock.Mock
}

func (m *MockComparisonService) Compare(ctx context.Context, input service.ComparisonInput) (*domain.ComparisonResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComparisonResult), args.Error(1)
}

func (m *MockComparisonService) Savings(ctx context.Context, components []domain.Component, destination domain.Country) (*domain.DestinationResult, error) {
	args := m.Called(ctx, components, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DestinationResult), args.Error(1)
}
