package invoice

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespoint/internal/core/apperror"
	"salespoint/internal/infrastructure/storage/postgres"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the UPSERT counter: one value per location key.
type mockQuerier struct {
	mu       sync.Mutex
	counters map[string]int64
	failWith error
}

func (m *mockQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return &mockRow{err: m.failWith}
	}
	if m.counters == nil {
		m.counters = make(map[string]int64)
	}
	key := args[0].(string)
	m.counters[key]++
	return &mockRow{val: m.counters[key]}
}

type mockProvider struct {
	q postgres.Querier
}

func (p *mockProvider) GetQuerier(context.Context) postgres.Querier {
	return p.q
}

func TestPGSequencer_Next(t *testing.T) {
	q := &mockQuerier{}
	seq := NewPGSequencer(&mockProvider{q: q})
	ctx := context.Background()

	n, err := seq.Next(ctx, "store-a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = seq.Next(ctx, "store-a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// Independent counter per location.
	n, err = seq.Next(ctx, "DC")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPGSequencer_ConcurrentDistinct(t *testing.T) {
	q := &mockQuerier{}
	seq := NewPGSequencer(&mockProvider{q: q})
	ctx := context.Background()

	const callers = 20
	results := make(chan int64, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := seq.Next(ctx, "store-a")
			assert.NoError(t, err)
			results <- n
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int64]bool)
	for n := range results {
		assert.False(t, seen[n], "duplicate sequence value %d", n)
		seen[n] = true
	}
	assert.Len(t, seen, callers)
}

func TestPGSequencer_StorageError(t *testing.T) {
	q := &mockQuerier{failWith: errors.New("connection refused")}
	seq := NewPGSequencer(&mockProvider{q: q})

	_, err := seq.Next(context.Background(), "store-a")
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeDatabase))
}

func TestPGSequencer_EmptyKey(t *testing.T) {
	seq := NewPGSequencer(&mockProvider{q: &mockQuerier{}})

	_, err := seq.Next(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}
