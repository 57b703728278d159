package ingest_test

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/coastal-monitor/internal/generator"
	"github.com/couchcryptid/coastal-monitor/internal/ingest"
	"github.com/couchcryptid/coastal-monitor/internal/observability"
	"github.com/couchcryptid/coastal-monitor/internal/settings"
)

func newTestLoop(t *testing.T, st *mockStore, enabled bool) (*ingest.Loop, *clockwork.FakeClock) {
	t.Helper()
	fake := clockwork.NewFakeClock()
	gen := generator.NewWithRand(rand.New(rand.NewPCG(1, 1)))
	metrics := observability.NewMetricsForTesting()
	rec := ingest.NewRecorder(st, nil, slog.Default(), metrics)
	loop := ingest.NewLoop(gen, rec, settings.NewStore(), slog.Default(), metrics, fake, enabled)
	return loop, fake
}

func runLoop(t *testing.T, loop *ingest.Loop) (cancel func()) {
	t.Helper()
	ctx, cancelCtx := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	return func() {
		cancelCtx()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("loop did not stop after cancellation")
		}
	}
}

func TestLoop_RecordsOneSamplePerInterval(t *testing.T) {
	st := &mockStore{}
	loop, fake := newTestLoop(t, st, true)
	stop := runLoop(t, loop)
	defer stop()

	// First iteration records immediately, then sleeps on the fake clock.
	fake.BlockUntil(1)
	assert.Equal(t, 1, st.count())

	// Default interval is 3s; each advance wakes exactly one iteration.
	fake.Advance(3 * time.Second)
	fake.BlockUntil(1)
	assert.Equal(t, 2, st.count())

	fake.Advance(3 * time.Second)
	fake.BlockUntil(1)
	assert.Equal(t, 3, st.count())
}

func TestLoop_DisabledRecordsNothing(t *testing.T) {
	st := &mockStore{}
	loop, fake := newTestLoop(t, st, false)
	stop := runLoop(t, loop)
	defer stop()

	fake.BlockUntil(1)
	fake.Advance(3 * time.Second)
	fake.BlockUntil(1)

	assert.Equal(t, 0, st.count())
}

func TestLoop_ToggleTakesEffectAtNextIteration(t *testing.T) {
	st := &mockStore{}
	loop, fake := newTestLoop(t, st, true)
	stop := runLoop(t, loop)
	defer stop()

	fake.BlockUntil(1)
	assert.Equal(t, 1, st.count())

	// Disable mid-sleep; the in-flight sleep is not interrupted and the next
	// iteration sees the flag.
	assert.False(t, loop.Toggle())

	fake.Advance(3 * time.Second)
	fake.BlockUntil(1)
	assert.Equal(t, 1, st.count())

	// Re-enable; the following iteration records again.
	assert.True(t, loop.Toggle())
	fake.Advance(3 * time.Second)
	fake.BlockUntil(1)
	assert.Equal(t, 2, st.count())
}

func TestLoop_ToggleTwiceReturnsToOriginalState(t *testing.T) {
	st := &mockStore{}
	loop, _ := newTestLoop(t, st, true)

	assert.True(t, loop.Enabled())
	loop.Toggle()
	assert.False(t, loop.Enabled())
	loop.Toggle()
	assert.True(t, loop.Enabled())
}

func TestLoop_StopsOnCancelledContext(t *testing.T) {
	st := &mockStore{}
	loop, _ := newTestLoop(t, st, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, loop.Run(ctx))
	assert.Equal(t, 0, st.count())
}
