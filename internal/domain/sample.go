package domain

import (
	"math"
	"time"
)

// TimestampLayout is the wire and storage format for sample timestamps, always UTC.
const TimestampLayout = "2006-01-02 15:04:05"

// Physical instrument bounds. Generated and forecast values are clamped to these.
const (
	SeaLevelMin  = 50.0
	SeaLevelMax  = 250.0
	WindSpeedMin = 1.0
	WindSpeedMax = 25.0
)

// Sample is one stored observation. Immutable once written; the ID is assigned
// by the record store and is strictly increasing in insertion order.
type Sample struct {
	ID        int64   `json:"id" db:"id"`
	SeaLevel  float64 `json:"sea_level" db:"sea_level"`
	WindSpeed float64 `json:"wind_speed" db:"wind_speed"`
	Timestamp string  `json:"timestamp" db:"timestamp"`
}

// ClassifiedSample is a Sample with derived status fields attached.
// Statuses are computed on read and never persisted.
type ClassifiedSample struct {
	Sample
	SeaStatus     Status `json:"sea_status"`
	WindStatus    Status `json:"wind_status"`
	OverallStatus Status `json:"overall_status"`
}

// WithStatus attaches the derived status triple to a stored sample.
func WithStatus(s Sample) ClassifiedSample {
	seaStatus, windStatus, overall := Classify(s.SeaLevel, s.WindSpeed)
	return ClassifiedSample{
		Sample:        s,
		SeaStatus:     seaStatus,
		WindStatus:    windStatus,
		OverallStatus: overall,
	}
}

// FormatTimestamp renders t in the storage timestamp format, normalized to UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Round2 rounds v to two decimal places, the precision used for all readings.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
