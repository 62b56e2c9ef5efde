package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"crossgate/internal/domain"
	"crossgate/internal/port"
	"crossgate/internal/service"
	"crossgate/mocks"
)

func setupRedemption(ledger port.ConsumptionLedger) (*mocks.MockTokenRedeemer, *mocks.MockSessionIssuer, *mocks.MockAuditRecorder, service.RedemptionService) {
	redeemer := new(mocks.MockTokenRedeemer)
	sessions := new(mocks.MockSessionIssuer)
	audit := new(mocks.MockAuditRecorder)

	svc := service.NewRedemptionService(redeemer, sessions, ledger, audit, "/", zap.NewNop())
	return redeemer, sessions, audit, svc
}

func TestRun_MissingToken(t *testing.T) {
	redeemer, _, _, svc := setupRedemption(nil)

	result := svc.Run(context.Background(), service.RedemptionInput{Token: ""})

	assert.Equal(t, domain.RedemptionFailed, result.State)
	assert.ErrorIs(t, result.Err, domain.ErrMissingToken)
	assert.Contains(t, result.Message, "Missing SSO token")
	redeemer.AssertNotCalled(t, "SignInWithToken", mock.Anything, mock.Anything)
}

func TestRun_AlreadyAuthenticated_NoRedemptionCall(t *testing.T) {
	redeemer, sessions, _, svc := setupRedemption(nil)

	sessions.On("Validate", "live-session-cookie").Return(&domain.Subject{ID: "uid123"}, nil)

	result := svc.Run(context.Background(), service.RedemptionInput{
		Token:         "abc",
		SessionCookie: "live-session-cookie",
	})

	assert.Equal(t, domain.RedemptionAlreadyAuthenticated, result.State)
	assert.Equal(t, "/", result.RedirectTo)
	assert.Equal(t, "uid123", result.Subject.ID)
	redeemer.AssertNotCalled(t, "SignInWithToken", mock.Anything, mock.Anything)
}

func TestRun_StaleSession_RedeemsAnyway(t *testing.T) {
	redeemer, sessions, audit, svc := setupRedemption(nil)

	sessions.On("Validate", "stale-cookie").Return(nil, domain.ErrUnauthorized)
	redeemer.On("SignInWithToken", mock.Anything, "abc").Return(&port.RedeemedSession{
		SubjectID: "uid123",
	}, nil)
	sessions.On("Issue", mock.AnythingOfType("*domain.Subject")).
		Return("new-cookie", time.Now().Add(time.Hour), nil)
	audit.On("Record", mock.Anything, mock.Anything).Return(nil)

	result := svc.Run(context.Background(), service.RedemptionInput{
		Token:         "abc",
		SessionCookie: "stale-cookie",
	})

	assert.Equal(t, domain.RedemptionDone, result.State)
	assert.Equal(t, "new-cookie", result.SessionValue)
}

func TestRun_Success(t *testing.T) {
	redeemer, sessions, audit, svc := setupRedemption(nil)

	redeemer.On("SignInWithToken", mock.Anything, "abc").Return(&port.RedeemedSession{
		SubjectID:     "uid123",
		Email:         "user@example.com",
		EmailVerified: true,
	}, nil)
	sessions.On("Issue", mock.MatchedBy(func(s *domain.Subject) bool {
		return s.ID == "uid123"
	})).Return("session-cookie", time.Now().Add(time.Hour), nil)
	audit.On("Record", mock.Anything, mock.MatchedBy(func(e domain.AuditEvent) bool {
		return e.Kind == domain.AuditTokenRedeemed && e.SubjectID == "uid123"
	})).Return(nil)

	result := svc.Run(context.Background(), service.RedemptionInput{Token: "abc"})

	assert.Equal(t, domain.RedemptionDone, result.State)
	assert.Equal(t, "/", result.RedirectTo)
	assert.Equal(t, "session-cookie", result.SessionValue)
	assert.Equal(t, "uid123", result.Subject.ID)
	redeemer.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestRun_RedemptionFails(t *testing.T) {
	redeemer, sessions, audit, svc := setupRedemption(nil)

	redeemer.On("SignInWithToken", mock.Anything, "expired-token").
		Return(nil, domain.ErrRedemptionFailed)
	audit.On("Record", mock.Anything, mock.MatchedBy(func(e domain.AuditEvent) bool {
		return e.Kind == domain.AuditRedemptionFailed
	})).Return(nil)

	result := svc.Run(context.Background(), service.RedemptionInput{Token: "expired-token"})

	assert.Equal(t, domain.RedemptionFailed, result.State)
	assert.ErrorIs(t, result.Err, domain.ErrRedemptionFailed)
	assert.Contains(t, result.Message, "Unable to sign in via SSO")
	sessions.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestRun_ConsumedToken_NoProviderCall(t *testing.T) {
	ledger := new(mocks.MockConsumptionLedger)
	redeemer, _, audit, svc := setupRedemption(ledger)

	ledger.On("Consumed", mock.Anything, mock.AnythingOfType("string")).Return(true, nil)
	audit.On("Record", mock.Anything, mock.Anything).Return(nil)

	result := svc.Run(context.Background(), service.RedemptionInput{Token: "replayed-token"})

	assert.Equal(t, domain.RedemptionFailed, result.State)
	assert.ErrorIs(t, result.Err, domain.ErrTokenConsumed)
	redeemer.AssertNotCalled(t, "SignInWithToken", mock.Anything, mock.Anything)
}

func TestRun_SuccessMarksTokenConsumed(t *testing.T) {
	ledger := new(mocks.MockConsumptionLedger)
	redeemer, sessions, audit, svc := setupRedemption(ledger)

	ledger.On("Consumed", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	redeemer.On("SignInWithToken", mock.Anything, "abc").Return(&port.RedeemedSession{
		SubjectID: "uid123",
	}, nil)
	sessions.On("Issue", mock.Anything).Return("cookie", time.Now().Add(time.Hour), nil)
	ledger.On("MarkConsumed", mock.Anything, mock.AnythingOfType("string"), time.Hour).Return(nil)
	audit.On("Record", mock.Anything, mock.Anything).Return(nil)

	result := svc.Run(context.Background(), service.RedemptionInput{Token: "abc"})

	assert.Equal(t, domain.RedemptionDone, result.State)
	ledger.AssertExpectations(t)
}

func TestRun_LedgerLookupFailure_ProceedsWithRedemption(t *testing.T) {
	ledger := new(mocks.MockConsumptionLedger)
	redeemer, sessions, audit, svc := setupRedemption(ledger)

	ledger.On("Consumed", mock.Anything, mock.AnythingOfType("string")).Return(false, assert.AnError)
	redeemer.On("SignInWithToken", mock.Anything, "abc").Return(&port.RedeemedSession{
		SubjectID: "uid123",
	}, nil)
	sessions.On("Issue", mock.Anything).Return("cookie", time.Now().Add(time.Hour), nil)
	ledger.On("MarkConsumed", mock.Anything, mock.AnythingOfType("string"), time.Hour).Return(nil)
	audit.On("Record", mock.Anything, mock.Anything).Return(nil)

	result := svc.Run(context.Background(), service.RedemptionInput{Token: "abc"})

	assert.Equal(t, domain.RedemptionDone, result.State)
}
