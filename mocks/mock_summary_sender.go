package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invex/internal/domain"
)

// MockSummarySender is a mock implementation of port.SummarySender.
type MockSummarySender struct {
	mock.Mock
}

func (m *MockSummarySender) SendRunSummary(ctx context.Context, summary *domain.RunSummary, reportURL string) error {
	args := m.Called(ctx, summary, reportURL)
	return args.Error(0)
}
