package port

import (
	"context"

	"crossgate/internal/domain"
)

// AuditRecorder persists handshake events. Recording is best-effort:
// callers log failures and carry on.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}
