package port

import (
	"context"
	"time"
)

// ProviderClaims holds the verified claims of an identity token.
type ProviderClaims struct {
	Subject       string // Provider-stable user ID
	Email         string
	EmailVerified bool
}

// RedeemedSession is the provider's answer to a successful cross-app
// token redemption.
type RedeemedSession struct {
	SubjectID     string
	Email         string
	EmailVerified bool
	IDToken       string
	ExpiresIn     time.Duration
}

// TokenVerifier validates an identity token with the shared provider.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*ProviderClaims, error)
}

// TokenMinter mints a cross-app token for an already-verified subject.
// The claims map is embedded in the token as-is.
type TokenMinter interface {
	MintCustomToken(ctx context.Context, subjectID string, claims map[string]string) (string, error)
}

// TokenRedeemer exchanges a cross-app token for a provider session.
type TokenRedeemer interface {
	SignInWithToken(ctx context.Context, customToken string) (*RedeemedSession, error)
}
