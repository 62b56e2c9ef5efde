package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/jackc/pgx/v5/stdlib"

	"crossgate/internal/config"
	"crossgate/internal/domain"
	"crossgate/internal/port"
)

// Recorder persists handshake audit events to PostgreSQL.
type Recorder struct {
	db *sqlx.DB
}

// NewDB creates the audit store connection pool.
func NewDB(cfg *config.AuditConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	return db, nil
}

// NewRecorder creates a Recorder over an existing connection pool.
func NewRecorder(db *sqlx.DB) *Recorder {
	return &Recorder{db: db}
}

const insertEvent = `
	INSERT INTO sso_audit_events (kind, subject_id, target_app, request_id, detail, occurred_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

// Record inserts one audit event.
func (r *Recorder) Record(ctx context.Context, event domain.AuditEvent) error {
	_, err := r.db.ExecContext(ctx, insertEvent,
		string(event.Kind),
		event.SubjectID,
		event.TargetApp,
		event.RequestID,
		event.Detail,
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("inserting audit event: %w", err)
	}
	return nil
}

// Compile-time check.
var _ port.AuditRecorder = (*Recorder)(nil)
