// Package settings holds the runtime-tunable service settings.
package settings

import "sync"

// Bounds and defaults for each tunable. Out-of-range updates are clamped
// rather than rejected.
const (
	DataIntervalMin, DataIntervalMax, DataIntervalDefault       = 1, 60, 3
	ChartPointsMin, ChartPointsMax, ChartPointsDefault          = 10, 500, 50
	PredictionDaysMin, PredictionDaysMax, PredictionDaysDefault = 1, 30, 7
)

// Settings is a consistent snapshot of the tunables: seconds between generated
// samples, the history window served to charts, and the forecast horizon.
// Settings live for the process lifetime only and are not persisted.
type Settings struct {
	DataInterval   int `json:"data_interval"`
	ChartPoints    int `json:"chart_points"`
	PredictionDays int `json:"prediction_days"`
}

// Patch is a partial settings update. Nil fields leave the current value unchanged.
type Patch struct {
	DataInterval   *int `json:"data_interval"`
	ChartPoints    *int `json:"chart_points"`
	PredictionDays *int `json:"prediction_days"`
}

// Store guards the shared settings. Get returns a full snapshot, never a torn
// read mixing old and new field values; Update applies a partial patch with
// per-field clamping and returns the resulting snapshot.
type Store struct {
	mu      sync.Mutex
	current Settings
}

// NewStore creates a Store holding the default settings.
func NewStore() *Store {
	return &Store{current: Settings{
		DataInterval:   DataIntervalDefault,
		ChartPoints:    ChartPointsDefault,
		PredictionDays: PredictionDaysDefault,
	}}
}

// Get returns a consistent snapshot of the current settings.
func (s *Store) Get() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update applies the present fields of p, clamping each to its bounds, and
// returns the full resulting settings.
func (s *Store) Update(p Patch) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.DataInterval != nil {
		s.current.DataInterval = clampInt(*p.DataInterval, DataIntervalMin, DataIntervalMax)
	}
	if p.ChartPoints != nil {
		s.current.ChartPoints = clampInt(*p.ChartPoints, ChartPointsMin, ChartPointsMax)
	}
	if p.PredictionDays != nil {
		s.current.PredictionDays = clampInt(*p.PredictionDays, PredictionDaysMin, PredictionDaysMax)
	}
	return s.current
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
