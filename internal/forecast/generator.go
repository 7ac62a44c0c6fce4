// Package forecast turns a census snapshot and a time window into a
// multi-unit, multi-category hourly call-volume projection.
package forecast

import (
	"fmt"
	"sort"
	"time"

	"callforecast/internal/model"
	"callforecast/internal/predictor"
)

// Predictions holds per-unit hourly prediction rows for one forecast run.
// Rows are clamped to ≥0; negative raw model output for near-zero
// categories is a model artifact, not a forecastable quantity.
type Predictions struct {
	Hours      []time.Time
	Categories []string
	ByUnit     map[string][][]float64 // unit → one row per hour
}

// Units returns the unit names present, sorted.
func (p *Predictions) Units() []string {
	units := make([]string, 0, len(p.ByUnit))
	for u := range p.ByUnit {
		units = append(units, u)
	}
	sort.Strings(units)
	return units
}

// Generate produces one prediction row per (hour, unit) pair, invoking the
// predictor once per pair. Hours are exactly `hours` consecutive hourly
// steps from start; calendar rollover is plain time arithmetic.
//
// An empty census map yields an empty (not error) result. Any predictor
// failure aborts the whole run with a *PredictionError.
func Generate(start time.Time, hours int, census model.CensusInput, identities map[string]int64, schema *predictor.Schema, pred predictor.Predictor) (*Predictions, error) {
	if hours < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, hours)
	}
	if schema == nil || schema.Len() == 0 {
		return nil, predictor.ErrEmptySchema
	}
	for unit, unitCensus := range census {
		for key, count := range unitCensus {
			if count < 0 {
				return nil, fmt.Errorf("%w: unit %q has %s=%d", ErrNegativeCensus, unit, key, count)
			}
		}
	}

	categories := pred.Categories()

	hourSeq := make([]time.Time, hours)
	for i := range hourSeq {
		hourSeq[i] = start.Add(time.Duration(i) * time.Hour)
	}

	result := &Predictions{
		Hours:      hourSeq,
		Categories: categories,
		ByUnit:     make(map[string][][]float64, len(census)),
	}

	// Sorted unit order keeps predictor invocation deterministic.
	units := make([]string, 0, len(census))
	for u := range census {
		units = append(units, u)
	}
	sort.Strings(units)

	for _, unit := range units {
		var orgID *int64
		if id, ok := identities[unit]; ok {
			orgID = &id
		}

		rows := make([][]float64, hours)
		for i, hour := range hourSeq {
			vec, err := predictor.BuildVector(hour, census[unit], schema, orgID)
			if err != nil {
				return nil, err
			}

			out, err := pred.Predict([][]float64{vec})
			if err != nil {
				return nil, &PredictionError{Hour: hour, Unit: unit, Err: err}
			}
			if len(out) != 1 {
				return nil, &PredictionError{Hour: hour, Unit: unit,
					Err: fmt.Errorf("expected 1 output row, got %d", len(out))}
			}
			if len(out[0]) != len(categories) {
				return nil, &PredictionError{Hour: hour, Unit: unit,
					Err: fmt.Errorf("%w: row has %d values, model declares %d categories",
						ErrCategoryMismatch, len(out[0]), len(categories))}
			}

			row := make([]float64, len(categories))
			for j, v := range out[0] {
				if v < 0 {
					v = 0
				}
				row[j] = v
			}
			rows[i] = row
		}
		result.ByUnit[unit] = rows
	}

	return result, nil
}
