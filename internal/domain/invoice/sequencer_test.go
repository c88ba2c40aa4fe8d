package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSequencer struct {
	counters map[string]int64
}

func (s *stubSequencer) Next(_ context.Context, key string) (int64, error) {
	if s.counters == nil {
		s.counters = make(map[string]int64)
	}
	s.counters[key]++
	return s.counters[key], nil
}

func TestFormatNumber(t *testing.T) {
	date := time.Date(2026, 1, 14, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "MAIN-20260114-0007", FormatNumber(Config{Prefix: "MAIN"}, date, 7))
	assert.Equal(t, "DC-20260114-0001", FormatNumber(Config{Prefix: "DC"}, date, 1))
	assert.Equal(t, "S1-20260114-012345", FormatNumber(Config{Prefix: "S1", PadWidth: 6}, date, 12345))

	// Sequence wider than the pad keeps all digits.
	assert.Equal(t, "MAIN-20260114-123456", FormatNumber(Config{Prefix: "MAIN"}, date, 123456))
}

func TestIssuer_PerLocationCounters(t *testing.T) {
	issuer := NewIssuer(&stubSequencer{})
	at := time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	n1, err := issuer.Issue(ctx, "store-a", Config{Prefix: "A"}, at)
	require.NoError(t, err)
	n2, err := issuer.Issue(ctx, "store-a", Config{Prefix: "A"}, at)
	require.NoError(t, err)
	n3, err := issuer.Issue(ctx, "store-b", Config{Prefix: "B"}, at)
	require.NoError(t, err)

	assert.Equal(t, "A-20260114-0001", n1)
	assert.Equal(t, "A-20260114-0002", n2)
	assert.Equal(t, "B-20260114-0001", n3)
}
