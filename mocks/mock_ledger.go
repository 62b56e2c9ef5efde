package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockConsumptionLedger is a mock implementation of port.ConsumptionLedger.
type MockConsumptionLedger struct {
	mock.Mock
}

func (m *MockConsumptionLedger) Consumed(ctx context.Context, tokenDigest string) (bool, error) {
	args := m.Called(ctx, tokenDigest)
	return args.Bool(0), args.Error(1)
}

func (m *MockConsumptionLedger) MarkConsumed(ctx context.Context, tokenDigest string, ttl time.Duration) error {
	args := m.Called(ctx, tokenDigest, ttl)
	return args.Error(0)
}
