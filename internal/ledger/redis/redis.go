package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"crossgate/internal/config"
	"crossgate/internal/port"
)

const keyPrefix = "sso:consumed:"

// Ledger is a Redis-backed consumption ledger. Entries expire with the
// token they track, so the ledger never grows past one token lifetime.
type Ledger struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, cfg config.LedgerConfig) (*Ledger, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return &Ledger{client: client}, nil
}

func (l *Ledger) key(digest string) string {
	return keyPrefix + digest
}

// Consumed reports whether the token digest has been redeemed before.
func (l *Ledger) Consumed(ctx context.Context, tokenDigest string) (bool, error) {
	_, err := l.client.Get(ctx, l.key(tokenDigest)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MarkConsumed records the redemption timestamp for the token digest.
func (l *Ledger) MarkConsumed(ctx context.Context, tokenDigest string, ttl time.Duration) error {
	return l.client.Set(ctx, l.key(tokenDigest), time.Now().UTC().Format(time.RFC3339), ttl).Err()
}

// Close releases the Redis connection.
func (l *Ledger) Close() error {
	return l.client.Close()
}

// Compile-time check.
var _ port.ConsumptionLedger = (*Ledger)(nil)
