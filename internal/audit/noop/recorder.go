package noop

import (
	"context"

	"crossgate/internal/domain"
	"crossgate/internal/port"
)

// Recorder discards audit events. Used when the audit store is not
// configured.
type Recorder struct{}

// NewRecorder creates a no-op Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Record(_ context.Context, _ domain.AuditEvent) error {
	return nil
}

// Compile-time check.
var _ port.AuditRecorder = (*Recorder)(nil)
