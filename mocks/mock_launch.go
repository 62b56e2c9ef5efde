package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockExchangeClient is a mock implementation of port.ExchangeClient.
type MockExchangeClient struct {
	mock.Mock
}

func (m *MockExchangeClient) ExchangeToken(ctx context.Context, idToken, targetApp string) (string, error) {
	args := m.Called(ctx, idToken, targetApp)
	return args.String(0), args.Error(1)
}

// MockNavigator is a mock implementation of port.Navigator.
type MockNavigator struct {
	mock.Mock
}

func (m *MockNavigator) OpenURL(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}
