package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invex/internal/domain"
)

// MockInvoiceRepository is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) SaveRun(ctx context.Context, summary *domain.RunSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveRecord(ctx context.Context, runID uuid.UUID, rec *domain.InvoiceRecord) error {
	args := m.Called(ctx, runID, rec)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveFailure(ctx context.Context, runID uuid.UUID, failure *domain.Failure) error {
	args := m.Called(ctx, runID, failure)
	return args.Error(0)
}
