package memory

import (
	"context"
	"sync"
	"time"

	"crossgate/internal/port"
)

// Ledger is an in-process consumption ledger for development and
// tests. Entries expire lazily on lookup.
type Ledger struct {
	mu      sync.Mutex
	entries map[string]time.Time // digest -> expiry
}

// New creates an empty in-memory ledger.
func New() *Ledger {
	return &Ledger{entries: map[string]time.Time{}}
}

func (l *Ledger) Consumed(_ context.Context, tokenDigest string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	expiry, ok := l.entries[tokenDigest]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(l.entries, tokenDigest)
		return false, nil
	}
	return true, nil
}

func (l *Ledger) MarkConsumed(_ context.Context, tokenDigest string, ttl time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[tokenDigest] = time.Now().Add(ttl)
	return nil
}

// Compile-time check.
var _ port.ConsumptionLedger = (*Ledger)(nil)
