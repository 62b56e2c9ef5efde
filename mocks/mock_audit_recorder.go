package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"crossgate/internal/domain"
)

// MockAuditRecorder is a mock implementation of port.AuditRecorder.
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, event domain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
