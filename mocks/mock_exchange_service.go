package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"crossgate/internal/service"
)

// MockExchangeService is a mock implementation of service.ExchangeService.
type MockExchangeService struct {
	mock.Mock
}

func (m *MockExchangeService) Exchange(ctx context.Context, input service.ExchangeInput) (*service.ExchangeOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExchangeOutput), args.Error(1)
}
