package identity

import (
	"context"

	"crossgate/internal/domain"
	"crossgate/internal/port"
)

// Verifier wraps the provider's verification and minting primitives.
// It is an explicitly constructed, injected dependency; the provider
// client behind it is built once per process and reused.
type Verifier struct {
	verifier port.TokenVerifier
	minter   port.TokenMinter
}

// NewVerifier creates a Verifier over a provider client.
func NewVerifier(verifier port.TokenVerifier, minter port.TokenMinter) *Verifier {
	return &Verifier{verifier: verifier, minter: minter}
}

// Verify validates an identity token and returns the Subject it
// proves. A Subject is never constructed any other way.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*domain.Subject, error) {
	claims, err := v.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return &domain.Subject{
		ID:            claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
	}, nil
}

// Mint creates a cross-app token for a verified subject. A missing
// targetApp claim is defaulted to the sentinel; minting never fails
// solely because the target is absent.
func (v *Verifier) Mint(ctx context.Context, subjectID string, claims map[string]string) (string, error) {
	if claims == nil {
		claims = map[string]string{}
	}
	if claims["targetApp"] == "" {
		claims["targetApp"] = domain.TargetAppUnknown
	}
	return v.minter.MintCustomToken(ctx, subjectID, claims)
}
