package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"tradeflow/internal/domain"
)

// MockTariffRateRepo is a mock implementation of port.TariffRateRepository.
type MockTariffRateRepo struct {
	mock.Mock
}

func (m *MockTariffRateRepo) FindBaseRate(ctx context.Context, destination domain.Country, hsCode string, asOf time.Time) (*domain.TariffRateRecord, error) {
	args := m.Called(ctx, destination, hsCode, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TariffRateRecord), args.Error(1)
}

func (m *MockTariffRateRepo) FindPolicyAdjustments(ctx context.Context, destination domain.Country, codes []string, origin domain.Country, asOf time.Time) ([]domain.PolicyAdjustment, error) {
	args := m.Called(ctx, destination, codes, origin, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PolicyAdjustment), args.Error(1)
}

func (m *MockTariffRateRepo) FindChapterPolicies(ctx context.Context, destination domain.Country, chapter string, origin domain.Country, asOf time.Time) ([]domain.PolicyAdjustment, error) {
	args := m.Called(ctx, destination, chapter, origin, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PolicyAdjustment), args.Error(1)
}
