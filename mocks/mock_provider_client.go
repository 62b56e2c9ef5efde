package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"crossgate/internal/port"
)

// MockTokenVerifier is a mock implementation of port.TokenVerifier.
type MockTokenVerifier struct {
	mock.Mock
}

func (m *MockTokenVerifier) VerifyIDToken(ctx context.Context, idToken string) (*port.ProviderClaims, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ProviderClaims), args.Error(1)
}

// MockTokenMinter is a mock implementation of port.TokenMinter.
type MockTokenMinter struct {
	mock.Mock
}

func (m *MockTokenMinter) MintCustomToken(ctx context.Context, subjectID string, claims map[string]string) (string, error) {
	args := m.Called(ctx, subjectID, claims)
	return args.String(0), args.Error(1)
}

// MockTokenRedeemer is a mock implementation of port.TokenRedeemer.
type MockTokenRedeemer struct {
	mock.Mock
}

func (m *MockTokenRedeemer) SignInWithToken(ctx context.Context, customToken string) (*port.RedeemedSession, error) {
	args := m.Called(ctx, customToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.RedeemedSession), args.Error(1)
}
