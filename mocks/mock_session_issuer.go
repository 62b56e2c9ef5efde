package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	"crossgate/internal/domain"
)

// MockSessionIssuer is a mock implementation of port.SessionIssuer.
type MockSessionIssuer struct {
	mock.Mock
}

func (m *MockSessionIssuer) Issue(subject *domain.Subject) (string, time.Time, error) {
	args := m.Called(subject)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockSessionIssuer) Validate(value string) (*domain.Subject, error) {
	args := m.Called(value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subject), args.Error(1)
}
