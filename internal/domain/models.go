package domain

import "time"

// Subject is a verified end-user identity. It is produced only by a
// successful identity-token verification and is immutable afterwards.
type Subject struct {
	ID            string `json:"subject_id"`
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
}

// TargetAppUnknown is the sentinel target-application claim used when a
// caller does not declare a destination. Minting never fails solely
// because the target is absent.
const TargetAppUnknown = "unknown"

// AuditEvent records one observable step of the SSO handshake.
type AuditEvent struct {
	Kind       AuditKind
	SubjectID  string
	TargetApp  string
	RequestID  string
	Detail     string
	OccurredAt time.Time
}
