package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.uber.org/zap"

	"crossgate/internal/domain"
	"crossgate/internal/port"
)

// ledgerTTL matches the cross-app token lifetime: once a token has
// expired on the provider side, remembering it buys nothing.
const ledgerTTL = time.Hour

// RedemptionInput carries what a single page load of the redemption
// route knows: the query token and the current session cookie, if any.
type RedemptionInput struct {
	Token         string
	SessionCookie string
	RequestID     string
}

// RedemptionResult is the terminal outcome of one redemption run.
type RedemptionResult struct {
	State          domain.RedemptionState
	Subject        *domain.Subject
	SessionValue   string
	SessionExpires time.Time
	RedirectTo     string
	Message        string
	Err            error
}

// RedemptionService drives the SSO redemption state machine:
//
//	Initializing -> {Redeeming, AlreadyAuthenticated, Failed} -> Done
//
// A run performs at most one redemption attempt.
type RedemptionService interface {
	Run(ctx context.Context, input RedemptionInput) *RedemptionResult
}

type redemptionService struct {
	redeemer  port.TokenRedeemer
	sessions  port.SessionIssuer
	ledger    port.ConsumptionLedger
	audit     port.AuditRecorder
	logger    *zap.Logger
	homeRoute string
}

// NewRedemptionService creates a RedemptionService. The ledger may be
// nil when replay tracking is disabled; the provider's own single-use
// enforcement remains in effect either way.
func NewRedemptionService(
	redeemer port.TokenRedeemer,
	sessions port.SessionIssuer,
	ledger port.ConsumptionLedger,
	audit port.AuditRecorder,
	homeRoute string,
	logger *zap.Logger,
) RedemptionService {
	return &redemptionService{
		redeemer:  redeemer,
		sessions:  sessions,
		ledger:    ledger,
		audit:     audit,
		logger:    logger,
		homeRoute: homeRoute,
	}
}

func (s *redemptionService) Run(ctx context.Context, input RedemptionInput) *RedemptionResult {
	state := domain.RedemptionInitializing

	if input.Token == "" {
		return s.fail(ctx, state, input, domain.ErrMissingToken, "Missing SSO token.")
	}

	// Idempotence short-circuit: a live local session means redeeming
	// is a no-op that still lands the user on the home route.
	if input.SessionCookie != "" {
		if subject, err := s.sessions.Validate(input.SessionCookie); err == nil {
			return &RedemptionResult{
				State:      domain.RedemptionAlreadyAuthenticated,
				Subject:    subject,
				RedirectTo: s.homeRoute,
			}
		}
	}

	state = domain.RedemptionRedeeming
	digest := tokenDigest(input.Token)

	if s.ledger != nil {
		consumed, err := s.ledger.Consumed(ctx, digest)
		if err != nil {
			s.logger.Warn("consumption ledger lookup failed",
				zap.String("request_id", input.RequestID),
				zap.Error(err),
			)
		} else if consumed {
			return s.fail(ctx, state, input, domain.ErrTokenConsumed, "Unable to sign in via SSO.")
		}
	}

	redeemed, err := s.redeemer.SignInWithToken(ctx, input.Token)
	if err != nil {
		return s.fail(ctx, state, input, domain.ErrRedemptionFailed, "Unable to sign in via SSO.")
	}

	subject := &domain.Subject{
		ID:            redeemed.SubjectID,
		Email:         redeemed.Email,
		EmailVerified: redeemed.EmailVerified,
	}

	value, expires, err := s.sessions.Issue(subject)
	if err != nil {
		s.logger.Error("issuing session failed",
			zap.String("request_id", input.RequestID),
			zap.Error(err),
		)
		return s.fail(ctx, state, input, domain.ErrRedemptionFailed, "Unable to sign in via SSO.")
	}

	if s.ledger != nil {
		if err := s.ledger.MarkConsumed(ctx, digest, ledgerTTL); err != nil {
			s.logger.Warn("marking token consumed failed",
				zap.String("request_id", input.RequestID),
				zap.Error(err),
			)
		}
	}

	s.record(ctx, domain.AuditEvent{
		Kind:      domain.AuditTokenRedeemed,
		SubjectID: subject.ID,
		RequestID: input.RequestID,
	})

	return &RedemptionResult{
		State:          domain.RedemptionDone,
		Subject:        subject,
		SessionValue:   value,
		SessionExpires: expires,
		RedirectTo:     s.homeRoute,
	}
}

func (s *redemptionService) fail(ctx context.Context, from domain.RedemptionState, input RedemptionInput, err error, message string) *RedemptionResult {
	s.logger.Info("sso redemption failed",
		zap.String("request_id", input.RequestID),
		zap.String("from_state", string(from)),
		zap.Error(err),
	)
	if from == domain.RedemptionRedeeming {
		s.record(ctx, domain.AuditEvent{
			Kind:      domain.AuditRedemptionFailed,
			RequestID: input.RequestID,
			Detail:    err.Error(),
		})
	}
	return &RedemptionResult{
		State:   domain.RedemptionFailed,
		Message: message,
		Err:     err,
	}
}

func (s *redemptionService) record(ctx context.Context, event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	event.OccurredAt = time.Now()
	if err := s.audit.Record(ctx, event); err != nil {
		s.logger.Warn("recording audit event failed",
			zap.String("kind", string(event.Kind)),
			zap.Error(err),
		)
	}
}

// tokenDigest is the ledger key for a token. Tokens are bearer
// credentials; only a digest of one may be stored.
func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
