package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invex/internal/domain"
)

// MockTextLoader is a mock implementation of port.TextLoader.
type MockTextLoader struct {
	mock.Mock
}

func (m *MockTextLoader) Load(ctx context.Context, path string) (*domain.RawDocument, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RawDocument), args.Error(1)
}

func (m *MockTextLoader) Parse(ctx context.Context, name string, data []byte) (*domain.RawDocument, error) {
	args := m.Called(ctx, name, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RawDocument), args.Error(1)
}
