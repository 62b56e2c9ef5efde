package identity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"crossgate/internal/domain"
	"crossgate/internal/identity"
	"crossgate/internal/port"
	"crossgate/mocks"
)

func TestVerify_ReturnsSubject(t *testing.T) {
	mockVerifier := new(mocks.MockTokenVerifier)
	mockMinter := new(mocks.MockTokenMinter)
	v := identity.NewVerifier(mockVerifier, mockMinter)

	mockVerifier.On("VerifyIDToken", mock.Anything, "valid-id-token").Return(&port.ProviderClaims{
		Subject:       "uid123",
		Email:         "user@example.com",
		EmailVerified: true,
	}, nil)

	subject, err := v.Verify(context.Background(), "valid-id-token")

	assert.NoError(t, err)
	assert.Equal(t, "uid123", subject.ID)
	assert.Equal(t, "user@example.com", subject.Email)
	assert.True(t, subject.EmailVerified)
	mockVerifier.AssertExpectations(t)
}

func TestVerify_PropagatesInvalidToken(t *testing.T) {
	mockVerifier := new(mocks.MockTokenVerifier)
	mockMinter := new(mocks.MockTokenMinter)
	v := identity.NewVerifier(mockVerifier, mockMinter)

	mockVerifier.On("VerifyIDToken", mock.Anything, "bad-token").Return(nil, domain.ErrInvalidToken)

	subject, err := v.Verify(context.Background(), "bad-token")

	assert.Nil(t, subject)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestMint_DefaultsTargetAppSentinel(t *testing.T) {
	mockVerifier := new(mocks.MockTokenVerifier)
	mockMinter := new(mocks.MockTokenMinter)
	v := identity.NewVerifier(mockVerifier, mockMinter)

	mockMinter.On("MintCustomToken", mock.Anything, "uid123", map[string]string{
		"targetApp": domain.TargetAppUnknown,
	}).Return("custom-token", nil)

	token, err := v.Mint(context.Background(), "uid123", nil)

	assert.NoError(t, err)
	assert.Equal(t, "custom-token", token)
	mockMinter.AssertExpectations(t)
}

func TestMint_EmptyTargetAppDefaulted(t *testing.T) {
	mockVerifier := new(mocks.MockTokenVerifier)
	mockMinter := new(mocks.MockTokenMinter)
	v := identity.NewVerifier(mockVerifier, mockMinter)

	mockMinter.On("MintCustomToken", mock.Anything, "uid123", map[string]string{
		"targetApp": domain.TargetAppUnknown,
	}).Return("custom-token", nil)

	_, err := v.Mint(context.Background(), "uid123", map[string]string{"targetApp": ""})

	assert.NoError(t, err)
	mockMinter.AssertExpectations(t)
}

func TestMint_PreservesDeclaredTarget(t *testing.T) {
	mockVerifier := new(mocks.MockTokenVerifier)
	mockMinter := new(mocks.MockTokenMinter)
	v := identity.NewVerifier(mockVerifier, mockMinter)

	mockMinter.On("MintCustomToken", mock.Anything, "uid123", map[string]string{
		"targetApp": "partner-app",
	}).Return("custom-token", nil)

	_, err := v.Mint(context.Background(), "uid123", map[string]string{"targetApp": "partner-app"})

	assert.NoError(t, err)
	mockMinter.AssertExpectations(t)
}
