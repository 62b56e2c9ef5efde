package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"crossgate/internal/service"
)

// MockRedemptionService is a mock implementation of service.RedemptionService.
type MockRedemptionService struct {
	mock.Mock
}

func (m *MockRedemptionService) Run(ctx context.Context, input service.RedemptionInput) *service.RedemptionResult {
	args := m.Called(ctx, input)
	return args.Get(0).(*service.RedemptionResult)
}
