// Package ingest writes samples into the record store, both from the
// background dummy generator loop and from API-driven writes.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/coastal-monitor/internal/domain"
	"github.com/couchcryptid/coastal-monitor/internal/observability"
	"github.com/couchcryptid/coastal-monitor/internal/store"
)

// Sample sources, used as the metrics label and log field.
const (
	SourceGenerator = "generator"
	SourceAPI       = "api"
	SourceManual    = "manual"
)

// Publisher fans a recorded sample out to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, rec domain.ClassifiedSample) error
}

// Recorder is the single write path to the record store. Every sample, whatever
// its origin, goes through Record so storage, fan-out, and metrics stay consistent.
type Recorder struct {
	store     store.Store
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewRecorder creates a Recorder. Pass a nil publisher to disable fan-out.
func NewRecorder(s store.Store, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Recorder {
	return &Recorder{
		store:     s,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// Record timestamps and appends one sample, then publishes it downstream.
// Publishing is best-effort: a failed publish is logged and counted but does
// not fail the record, since the store is the source of truth.
func (r *Recorder) Record(ctx context.Context, seaLevel, windSpeed float64, source string) (domain.Sample, error) {
	ts := domain.FormatTimestamp(domain.Now())

	id, err := r.store.Append(ctx, seaLevel, windSpeed, ts)
	if err != nil {
		r.metrics.RecordErrors.Inc()
		return domain.Sample{}, fmt.Errorf("record sample: %w", err)
	}

	sample := domain.Sample{ID: id, SeaLevel: seaLevel, WindSpeed: windSpeed, Timestamp: ts}
	r.metrics.SamplesRecorded.WithLabelValues(source).Inc()

	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, domain.WithStatus(sample)); err != nil {
			r.metrics.PublishErrors.Inc()
			r.logger.Warn("publish sample failed", "error", err, "id", sample.ID, "source", source)
		}
	}

	return sample, nil
}
