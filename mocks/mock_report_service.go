package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"tradeflow/internal/domain"
	"tradeflow/internal/service"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) WriteCSV(w io.Writer, result *domain.ComparisonResult) error {
	args := m.Called(w, result)
	return args.Error(0)
}

func (m *MockReportService) Archive(ctx context.Context, result *domain.ComparisonResult) (*service.ArchivedReport, error) {
	args := m.Called(ctx, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArchivedReport), args.Error(1)
}
