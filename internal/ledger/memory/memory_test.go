package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crossgate/internal/ledger/memory"
)

func TestConsumed_UnknownDigest(t *testing.T) {
	l := memory.New()

	consumed, err := l.Consumed(context.Background(), "digest-1")
	require.NoError(t, err)
	assert.False(t, consumed)
}

func TestMarkConsumed_ThenConsumed(t *testing.T) {
	l := memory.New()

	require.NoError(t, l.MarkConsumed(context.Background(), "digest-1", time.Hour))

	consumed, err := l.Consumed(context.Background(), "digest-1")
	require.NoError(t, err)
	assert.True(t, consumed)

	// A different digest is unaffected.
	consumed, err = l.Consumed(context.Background(), "digest-2")
	require.NoError(t, err)
	assert.False(t, consumed)
}

func TestConsumed_ExpiredEntry(t *testing.T) {
	l := memory.New()

	require.NoError(t, l.MarkConsumed(context.Background(), "digest-1", -time.Second))

	consumed, err := l.Consumed(context.Background(), "digest-1")
	require.NoError(t, err)
	assert.False(t, consumed)
}
