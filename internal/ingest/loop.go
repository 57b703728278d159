package ingest

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/coastal-monitor/internal/generator"
	"github.com/couchcryptid/coastal-monitor/internal/observability"
	"github.com/couchcryptid/coastal-monitor/internal/settings"
)

// Loop is the background dummy-data generator: while enabled, it records one
// generated sample per iteration, then sleeps for the configured interval.
// The enabled flag is toggled at runtime via the API; a toggle during the
// sleep takes effect at the next iteration boundary, not immediately.
type Loop struct {
	gen      *generator.Generator
	recorder *Recorder
	settings *settings.Store
	logger   *slog.Logger
	metrics  *observability.Metrics
	clock    clockwork.Clock
	enabled  atomic.Bool
}

// NewLoop creates the ingest loop with the dummy generator initially enabled
// or disabled per initiallyEnabled.
func NewLoop(gen *generator.Generator, recorder *Recorder, set *settings.Store, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock, initiallyEnabled bool) *Loop {
	l := &Loop{
		gen:      gen,
		recorder: recorder,
		settings: set,
		logger:   logger,
		metrics:  metrics,
		clock:    clock,
	}
	l.SetEnabled(initiallyEnabled)
	return l
}

// Enabled reports whether the dummy generator is currently enabled.
func (l *Loop) Enabled() bool {
	return l.enabled.Load()
}

// SetEnabled sets the dummy generator state.
func (l *Loop) SetEnabled(enabled bool) {
	l.enabled.Store(enabled)
	if enabled {
		l.metrics.DummyModeEnabled.Set(1)
	} else {
		l.metrics.DummyModeEnabled.Set(0)
	}
}

// Toggle flips the dummy generator state and returns the new value.
func (l *Loop) Toggle() bool {
	next := !l.enabled.Load()
	l.SetEnabled(next)
	l.logger.Info("dummy mode toggled", "enabled", next)
	return next
}

// Run executes the generate-and-record loop until the context is cancelled.
// The interval is re-read from settings every iteration, so interval changes
// apply from the next sleep onward. A failed record is fatal to that iteration
// only; the loop keeps running.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("ingest loop started", "enabled", l.Enabled())
	l.metrics.IngestRunning.Set(1)
	defer l.metrics.IngestRunning.Set(0)

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("ingest loop stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if l.Enabled() {
			seaLevel, windSpeed := l.gen.Generate()
			if _, err := l.recorder.Record(ctx, seaLevel, windSpeed, SourceGenerator); err != nil && ctx.Err() == nil {
				l.logger.Error("record generated sample failed", "error", err)
			}
		}

		interval := time.Duration(l.settings.Get().DataInterval) * time.Second
		if !l.sleep(ctx, interval) {
			l.logger.Info("ingest loop stopping", "reason", ctx.Err())
			return nil
		}
	}
}

// sleep waits for d or until the context is cancelled. Returns false on cancellation.
func (l *Loop) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := l.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
