package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crossgate/internal/config"
	"crossgate/internal/domain"
	"crossgate/internal/session"
)

func testManager(ttl time.Duration) *session.Manager {
	return session.NewManager(config.SessionConfig{
		Secret: "test-secret",
		Issuer: "crossgate-test",
		TTL:    ttl,
	})
}

func TestIssueAndValidate_RoundTrip(t *testing.T) {
	m := testManager(time.Hour)

	subject := &domain.Subject{
		ID:            "uid123",
		Email:         "user@example.com",
		EmailVerified: true,
	}

	value, expiresAt, err := m.Issue(subject)
	require.NoError(t, err)
	assert.NotEmpty(t, value)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	got, err := m.Validate(value)
	require.NoError(t, err)
	assert.Equal(t, "uid123", got.ID)
	assert.Equal(t, "user@example.com", got.Email)
	assert.True(t, got.EmailVerified)
}

func TestValidate_Expired(t *testing.T) {
	m := testManager(-time.Minute)

	value, _, err := m.Issue(&domain.Subject{ID: "uid123"})
	require.NoError(t, err)

	_, err = m.Validate(value)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidate_Tampered(t *testing.T) {
	m := testManager(time.Hour)

	value, _, err := m.Issue(&domain.Subject{ID: "uid123"})
	require.NoError(t, err)

	_, err = m.Validate(value + "x")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidate_ForeignIssuer(t *testing.T) {
	other := session.NewManager(config.SessionConfig{
		Secret: "test-secret",
		Issuer: "someone-else",
		TTL:    time.Hour,
	})
	value, _, err := other.Issue(&domain.Subject{ID: "uid123"})
	require.NoError(t, err)

	m := testManager(time.Hour)
	_, err = m.Validate(value)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidate_Garbage(t *testing.T) {
	m := testManager(time.Hour)

	_, err := m.Validate("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
