package forecast

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"callforecast/internal/directory"
	"callforecast/internal/metrics"
	"callforecast/internal/model"
	"callforecast/internal/predictor"
)

// Request describes one forecast invocation from any caller surface.
type Request struct {
	Start time.Time
	Hours int
	Units model.CensusInput

	// Selected optionally narrows aggregation to a subset of the
	// requested units. Nil means all of them.
	Selected []string
}

// Result pairs the aggregated table with run metadata.
type Result struct {
	RunID string
	Table *Table
}

// Service wires the loaded artifacts and directory into the forecast
// pipeline. All fields are immutable after construction; any number of
// requests may run concurrently against one Service.
type Service struct {
	schema *predictor.Schema
	pred   predictor.Predictor
	dir    *directory.Directory
	log    zerolog.Logger
}

// NewService builds a forecast service around loaded artifacts.
func NewService(schema *predictor.Schema, pred predictor.Predictor, dir *directory.Directory, log zerolog.Logger) *Service {
	return &Service{schema: schema, pred: pred, dir: dir, log: log}
}

// Categories returns the model's call-category order.
func (s *Service) Categories() []string {
	return s.pred.Categories()
}

// Directory returns the hospital directory backing unit resolution.
func (s *Service) Directory() *directory.Directory {
	return s.dir
}

// Forecast validates the request, resolves unit identities through the
// directory, generates per-unit predictions, and aggregates them.
func (s *Service) Forecast(req Request) (*Result, error) {
	runID := uuid.NewString()
	timer := prometheus.NewTimer(metrics.ForecastDuration)
	defer timer.ObserveDuration()

	identities := make(map[string]int64, len(req.Units))
	for unit := range req.Units {
		orgID, ok := s.dir.OrganizationID(unit)
		if !ok {
			metrics.ForecastsFailed.WithLabelValues("input").Inc()
			return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
		}
		identities[unit] = orgID
	}

	preds, err := Generate(req.Start, req.Hours, req.Units, identities, s.schema, s.pred)
	if err != nil {
		var predErr *PredictionError
		if errors.As(err, &predErr) {
			metrics.ForecastsFailed.WithLabelValues("prediction").Inc()
		} else {
			metrics.ForecastsFailed.WithLabelValues("input").Inc()
		}
		s.log.Error().Err(err).Str("run_id", runID).Msg("forecast failed")
		return nil, err
	}

	selected := req.Selected
	if selected == nil {
		selected = preds.Units()
	}
	table := Aggregate(preds, selected)

	metrics.ForecastsTotal.Inc()
	metrics.PredictorRows.Add(float64(req.Hours * len(req.Units)))
	metrics.UnitsPerForecast.Observe(float64(len(req.Units)))

	s.log.Info().
		Str("run_id", runID).
		Time("start", req.Start).
		Int("hours", req.Hours).
		Int("units", len(req.Units)).
		Float64("grand_total", table.GrandTotal).
		Msg("forecast generated")

	return &Result{RunID: runID, Table: table}, nil
}
