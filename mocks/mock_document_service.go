package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invex/internal/domain"
	"invex/internal/jsonexport"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) ExportPages(ctx context.Context, pdfPath, outputDir string) (string, error) {
	args := m.Called(ctx, pdfPath, outputDir)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) Pages(ctx context.Context, name string, data []byte) (*jsonexport.Document, error) {
	args := m.Called(ctx, name, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jsonexport.Document), args.Error(1)
}

func (m *MockDocumentService) Invoice(ctx context.Context, name string, data []byte) (*domain.InvoiceRecord, *domain.Failure, error) {
	args := m.Called(ctx, name, data)
	var rec *domain.InvoiceRecord
	if v := args.Get(0); v != nil {
		rec = v.(*domain.InvoiceRecord)
	}
	var f *domain.Failure
	if v := args.Get(1); v != nil {
		f = v.(*domain.Failure)
	}
	return rec, f, args.Error(2)
}
