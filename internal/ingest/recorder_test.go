package ingest_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/coastal-monitor/internal/domain"
	"github.com/couchcryptid/coastal-monitor/internal/ingest"
	"github.com/couchcryptid/coastal-monitor/internal/observability"
)

// --- mocks ---

type mockStore struct {
	mu      sync.Mutex
	samples []domain.Sample
	err     error
}

func (m *mockStore) Append(_ context.Context, seaLevel, windSpeed float64, timestamp string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	id := int64(len(m.samples) + 1)
	m.samples = append(m.samples, domain.Sample{ID: id, SeaLevel: seaLevel, WindSpeed: windSpeed, Timestamp: timestamp})
	return id, nil
}

func (m *mockStore) Recent(_ context.Context, n int) ([]domain.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Sample
	for i := len(m.samples) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.samples[i])
	}
	return out, nil
}

func (m *mockStore) AllAscending(_ context.Context) ([]domain.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Sample(nil), m.samples...), nil
}

func (m *mockStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.samples)
}

type mockPublisher struct {
	mu        sync.Mutex
	published []domain.ClassifiedSample
	err       error
}

func (m *mockPublisher) Publish(_ context.Context, rec domain.ClassifiedSample) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, rec)
	return nil
}

// --- tests ---

func TestRecord_AppendsWithClockTimestamp(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2024, time.April, 26, 15, 10, 5, 0, time.UTC)))
	defer domain.SetClock(nil)

	st := &mockStore{}
	rec := ingest.NewRecorder(st, nil, slog.Default(), observability.NewMetricsForTesting())

	sample, err := rec.Record(context.Background(), 132.5, 9.75, ingest.SourceAPI)
	require.NoError(t, err)

	assert.Equal(t, int64(1), sample.ID)
	assert.Equal(t, 132.5, sample.SeaLevel)
	assert.Equal(t, 9.75, sample.WindSpeed)
	assert.Equal(t, "2024-04-26 15:10:05", sample.Timestamp)
	assert.Equal(t, 1, st.count())
}

func TestRecord_StoreErrorPropagates(t *testing.T) {
	st := &mockStore{err: errors.New("disk full")}
	rec := ingest.NewRecorder(st, nil, slog.Default(), observability.NewMetricsForTesting())

	_, err := rec.Record(context.Background(), 100, 5, ingest.SourceGenerator)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestRecord_PublishesClassifiedSample(t *testing.T) {
	st := &mockStore{}
	pub := &mockPublisher{}
	rec := ingest.NewRecorder(st, pub, slog.Default(), observability.NewMetricsForTesting())

	_, err := rec.Record(context.Background(), 200, 20, ingest.SourceManual)
	require.NoError(t, err)

	require.Len(t, pub.published, 1)
	assert.Equal(t, domain.StatusDanger, pub.published[0].SeaStatus)
	assert.Equal(t, domain.StatusDanger, pub.published[0].WindStatus)
	assert.Equal(t, domain.StatusDanger, pub.published[0].OverallStatus)
}

func TestRecord_PublishFailureDoesNotFailRecord(t *testing.T) {
	st := &mockStore{}
	pub := &mockPublisher{err: errors.New("broker down")}
	rec := ingest.NewRecorder(st, pub, slog.Default(), observability.NewMetricsForTesting())

	sample, err := rec.Record(context.Background(), 100, 5, ingest.SourceAPI)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sample.ID)
	assert.Equal(t, 1, st.count())
}
