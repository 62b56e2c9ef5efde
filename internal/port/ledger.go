package port

import (
	"context"
	"time"
)

// ConsumptionLedger tracks redeemed cross-app tokens by digest so a
// replayed token can be rejected at the redemption boundary. The
// provider's own single-use enforcement remains the backstop; ledger
// failures must never break an otherwise valid redemption.
type ConsumptionLedger interface {
	Consumed(ctx context.Context, tokenDigest string) (bool, error)
	MarkConsumed(ctx context.Context, tokenDigest string, ttl time.Duration) error
}
