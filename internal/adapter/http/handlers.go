package http

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/couchcryptid/coastal-monitor/internal/domain"
	"github.com/couchcryptid/coastal-monitor/internal/forecast"
	"github.com/couchcryptid/coastal-monitor/internal/ingest"
	"github.com/couchcryptid/coastal-monitor/internal/settings"
)

// sensorDataRequest is the POST body for external sensor readings. Pointer
// fields distinguish missing keys from zero readings.
type sensorDataRequest struct {
	SeaLevel  *float64 `json:"sea_level"`
	WindSpeed *float64 `json:"wind_speed"`
}

func (s *Server) handlePostSensorData(w http.ResponseWriter, r *http.Request) {
	var req sensorDataRequest
	if err := decodeJSON(r, &req); err != nil || req.SeaLevel == nil || req.WindSpeed == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "sea_level and wind_speed required"})
		return
	}

	// External readings are stored as sent; devices are trusted to be calibrated.
	sample, err := s.deps.Recorder.Record(r.Context(), *req.SeaLevel, *req.WindSpeed, ingest.SourceAPI)
	if err != nil {
		s.internalError(w, "store sensor data", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "ok", "timestamp": sample.Timestamp})
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	samples, err := s.deps.Store.Recent(r.Context(), 1)
	if err != nil {
		s.internalError(w, "query latest sample", err)
		return
	}
	if len(samples) == 0 {
		writeJSON(w, http.StatusOK, map[string]string{"message": "no data yet"})
		return
	}
	writeJSON(w, http.StatusOK, domain.WithStatus(samples[0]))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := s.deps.Settings.Get().ChartPoints

	samples, err := s.deps.Store.Recent(r.Context(), limit)
	if err != nil {
		s.internalError(w, "query history", err)
		return
	}

	// Recent returns newest first; charts want oldest first.
	records := make([]domain.ClassifiedSample, 0, len(samples))
	for i := len(samples) - 1; i >= 0; i-- {
		records = append(records, domain.WithStatus(samples[i]))
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGenerateDummy(w http.ResponseWriter, r *http.Request) {
	seaLevel, windSpeed := s.deps.Generator.Generate()

	sample, err := s.deps.Recorder.Record(r.Context(), seaLevel, windSpeed, ingest.SourceManual)
	if err != nil {
		s.internalError(w, "store dummy sample", err)
		return
	}
	writeJSON(w, http.StatusOK, domain.WithStatus(sample))
}

func (s *Server) handleToggleDummy(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"dummy_mode": s.deps.Loop.Toggle()})
}

func (s *Server) handleDummyStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"dummy_mode": s.deps.Loop.Enabled()})
}

func (s *Server) handlePrediction(w http.ResponseWriter, r *http.Request) {
	predictions, err := s.deps.Forecast.Forecast(r.Context())
	if errors.Is(err, forecast.ErrInsufficientData) {
		writeJSON(w, http.StatusOK, map[string]string{"error": "not enough data for prediction"})
		return
	}
	if err != nil {
		s.internalError(w, "compute prediction", err)
		return
	}
	writeJSON(w, http.StatusOK, predictions)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Settings.Get())
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch settings.Patch
	if err := decodeJSON(r, &patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid settings payload"})
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Settings.Update(patch))
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	samples, err := s.deps.Store.AllAscending(r.Context())
	if err != nil {
		s.internalError(w, "export csv", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment;filename=coastal_sensor_data.csv")

	cw := csv.NewWriter(w)
	header := []string{"id", "sea_level", "wind_speed", "timestamp", "sea_status", "wind_status", "overall_status"}
	if err := cw.Write(header); err != nil {
		s.logger.Error("write csv header", "error", err)
		return
	}
	for _, sample := range samples {
		rec := domain.WithStatus(sample)
		row := []string{
			strconv.FormatInt(rec.ID, 10),
			strconv.FormatFloat(rec.SeaLevel, 'f', -1, 64),
			strconv.FormatFloat(rec.WindSpeed, 'f', -1, 64),
			rec.Timestamp,
			string(rec.SeaStatus),
			string(rec.WindStatus),
			string(rec.OverallStatus),
		}
		if err := cw.Write(row); err != nil {
			s.logger.Error("write csv row", "error", err, "id", rec.ID)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		s.logger.Error("flush csv", "error", err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Error(op+" failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close() //nolint:errcheck // read-side close
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}
