package mocks

import (
	"github.com/stretchr/testify/mock"

	"tradeflow/internal/domain"
	"tradeflow/internal/service"
)

// MockCacheAdmin is a mock implementation of service.CacheAdmin.
type MockCacheAdmin struct {
	mock.Mock
}

func (m *MockCacheAdmin) Stats() service.CacheStats {
	args := m.Called()
	return args.Get(0).(service.CacheStats)
}

func (m *MockCacheAdmin) InvalidateCategory(cat domain.DataCategory) int {
	args := m.Called(cat)
	return args.Int(0)
}

func (m *MockCacheAdmin) ReloadTreaty(version string) int {
	args := m.Called(version)
	return args.Int(0)
}
