// Package forecast projects short-horizon daily trends from recent samples.
package forecast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/couchcryptid/coastal-monitor/internal/domain"
	"github.com/couchcryptid/coastal-monitor/internal/observability"
	"github.com/couchcryptid/coastal-monitor/internal/settings"
	"github.com/couchcryptid/coastal-monitor/internal/store"
)

// ErrInsufficientData signals that fewer than two samples exist, which is not
// enough to fit a trend. Callers treat it as a benign empty result, not a fault.
var ErrInsufficientData = errors.New("not enough data for prediction")

const (
	// windowSize caps how much history feeds the fit.
	windowSize = 200

	// stepSeconds is the assumed spacing between samples when converting
	// index steps to calendar days. Deliberately fixed rather than derived
	// from the live data_interval setting: the forecast's calendar semantics
	// were defined against 3-second sampling and downstream consumers depend
	// on them, so retuning the interval must not silently rescale the trend.
	stepSeconds = 3
	stepsPerDay = 86400 / stepSeconds
)

// Seasonal perturbation coefficients, layered on the linear trend so multi-day
// projections are not perfectly straight lines.
const (
	seaWaveAmplitude  = 15.0
	seaWaveFrequency  = 0.9
	windWaveAmplitude = 3.0
	windWaveFrequency = 1.1
	windWavePhase     = 0.5
)

// Prediction is one projected day, clamped to instrument bounds and classified
// like a stored sample.
type Prediction struct {
	Day           int           `json:"day"`
	Date          string        `json:"date"`
	SeaLevel      float64       `json:"sea_level"`
	WindSpeed     float64       `json:"wind_speed"`
	SeaStatus     domain.Status `json:"sea_status"`
	WindStatus    domain.Status `json:"wind_status"`
	OverallStatus domain.Status `json:"overall_status"`
}

// Engine computes forecasts from the record store. Given the same sample
// window and horizon, the output is deterministic.
type Engine struct {
	store    store.Store
	settings *settings.Store
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a forecast Engine.
func New(s store.Store, set *settings.Store, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		store:    s,
		settings: set,
		logger:   logger,
		metrics:  metrics,
	}
}

// Forecast fits an independent linear trend per metric over the most recent
// samples and projects it forward one entry per day, for the configured
// prediction_days horizon. Returns ErrInsufficientData with fewer than two samples.
func (e *Engine) Forecast(ctx context.Context) ([]Prediction, error) {
	start := time.Now()
	days := e.settings.Get().PredictionDays

	recent, err := e.store.Recent(ctx, windowSize)
	if err != nil {
		e.metrics.ForecastRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("load forecast window: %w", err)
	}
	if len(recent) < 2 {
		e.metrics.ForecastRequests.WithLabelValues("insufficient_data").Inc()
		return nil, ErrInsufficientData
	}

	// Recent returns newest first; the fit wants chronological order.
	samples := make([]domain.Sample, len(recent))
	for i, s := range recent {
		samples[len(recent)-1-i] = s
	}

	seaValues := make([]float64, len(samples))
	windValues := make([]float64, len(samples))
	for i, s := range samples {
		seaValues[i] = s.SeaLevel
		windValues[i] = s.WindSpeed
	}

	seaSlope, seaIntercept := linearRegression(seaValues)
	windSlope, windIntercept := linearRegression(windValues)

	n := float64(len(samples))
	now := domain.Now()

	predictions := make([]Prediction, 0, days)
	for day := 1; day <= days; day++ {
		futureIndex := n + float64(day)*stepsPerDay

		seaLevel := seaIntercept + seaSlope*futureIndex
		windSpeed := windIntercept + windSlope*futureIndex

		seaLevel += seaWaveAmplitude * math.Sin(float64(day)*seaWaveFrequency)
		windSpeed += windWaveAmplitude * math.Sin(float64(day)*windWaveFrequency+windWavePhase)

		seaLevel = domain.Clamp(domain.Round2(seaLevel), domain.SeaLevelMin, domain.SeaLevelMax)
		windSpeed = domain.Clamp(domain.Round2(windSpeed), domain.WindSpeedMin, domain.WindSpeedMax)

		seaStatus, windStatus, overall := domain.Classify(seaLevel, windSpeed)
		predictions = append(predictions, Prediction{
			Day:           day,
			Date:          now.AddDate(0, 0, day).UTC().Format("2006-01-02"),
			SeaLevel:      seaLevel,
			WindSpeed:     windSpeed,
			SeaStatus:     seaStatus,
			WindStatus:    windStatus,
			OverallStatus: overall,
		})
	}

	e.metrics.ForecastRequests.WithLabelValues("success").Inc()
	e.metrics.ForecastDuration.Observe(time.Since(start).Seconds())
	e.logger.Debug("forecast computed", "window", len(samples), "days", days)

	return predictions, nil
}

// linearRegression fits value = intercept + slope*index over index 0..n-1 using
// the closed-form least-squares sums. Falls back to a flat line at the mean
// when the denominator degenerates (n <= 1).
func linearRegression(ys []float64) (slope, intercept float64) {
	n := float64(len(ys))
	if len(ys) == 0 {
		return 0, 0
	}
	if len(ys) == 1 {
		return 0, ys[0]
	}

	var sumX, sumY, sumXX, sumXY float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}

	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
