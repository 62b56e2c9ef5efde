package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"crossgate/internal/config"
	"crossgate/internal/domain"
	"crossgate/internal/identity"
	"crossgate/internal/port"
)

// ExchangeInput is the DTO for cross-app token exchange requests.
type ExchangeInput struct {
	IDToken   string
	TargetApp string
	RequestID string
}

// ExchangeOutput contains the minted cross-app token.
type ExchangeOutput struct {
	CustomToken string
	Subject     domain.Subject
}

// ExchangeService defines the token exchange contract: re-verify the
// caller's identity token, then mint a cross-app token scoped to the
// declared target application.
type ExchangeService interface {
	Exchange(ctx context.Context, input ExchangeInput) (*ExchangeOutput, error)
}

type exchangeService struct {
	verifier *identity.Verifier
	audit    port.AuditRecorder
	logger   *zap.Logger

	// Presence flags only. Raw credential values never reach a log.
	projectIDPresent   bool
	clientEmailPresent bool
	privateKeyPresent  bool
}

// NewExchangeService creates an ExchangeService.
func NewExchangeService(verifier *identity.Verifier, audit port.AuditRecorder, providerCfg config.ProviderConfig, logger *zap.Logger) ExchangeService {
	return &exchangeService{
		verifier:           verifier,
		audit:              audit,
		logger:             logger,
		projectIDPresent:   providerCfg.ProjectID != "",
		clientEmailPresent: providerCfg.ClientEmail != "",
		privateKeyPresent:  providerCfg.PrivateKey != "",
	}
}

func (s *exchangeService) Exchange(ctx context.Context, input ExchangeInput) (*ExchangeOutput, error) {
	subject, err := s.verifier.Verify(ctx, input.IDToken)
	if err != nil {
		s.logFailure("identity token verification failed", input, err)
		s.record(ctx, domain.AuditEvent{
			Kind:      domain.AuditExchangeRejected,
			TargetApp: input.TargetApp,
			RequestID: input.RequestID,
			Detail:    "verification failed",
		})
		return nil, domain.ErrInvalidToken
	}

	token, err := s.verifier.Mint(ctx, subject.ID, map[string]string{"targetApp": input.TargetApp})
	if err != nil {
		s.logFailure("cross-app token mint failed", input, err)
		s.record(ctx, domain.AuditEvent{
			Kind:      domain.AuditExchangeRejected,
			SubjectID: subject.ID,
			TargetApp: input.TargetApp,
			RequestID: input.RequestID,
			Detail:    "mint failed",
		})
		return nil, domain.ErrMintFailed
	}

	s.record(ctx, domain.AuditEvent{
		Kind:      domain.AuditTokenMinted,
		SubjectID: subject.ID,
		TargetApp: input.TargetApp,
		RequestID: input.RequestID,
	})

	return &ExchangeOutput{CustomToken: token, Subject: *subject}, nil
}

func (s *exchangeService) logFailure(msg string, input ExchangeInput, err error) {
	s.logger.Error(msg,
		zap.String("request_id", input.RequestID),
		zap.String("target_app", input.TargetApp),
		zap.Bool("project_id_present", s.projectIDPresent),
		zap.Bool("client_email_present", s.clientEmailPresent),
		zap.Bool("private_key_present", s.privateKeyPresent),
		zap.Error(err),
	)
}

func (s *exchangeService) record(ctx context.Context, event domain.AuditEvent) {
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
