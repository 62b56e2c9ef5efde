package port

import (
	"time"

	"crossgate/internal/domain"
)

// SessionIssuer issues and validates the target application's session
// credential. Sessions are stateless; a credential that validates is a
// live session.
type SessionIssuer interface {
	Issue(subject *domain.Subject) (value string, expiresAt time.Time, err error)
	Validate(value string) (*domain.Subject, error)
}
