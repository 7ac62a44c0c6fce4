package predictor

import (
	"strconv"
	"time"

	"callforecast/internal/model"
)

// Time-derived feature column names. A column is populated only when the
// loaded schema contains it.
const (
	ColHourOfDay = "hour_of_day"
	ColDayOfWeek = "day_of_week"
	ColIsWeekend = "is_weekend"
	ColMonth     = "month"
)

// OrgColumnPrefix is the naming pattern of per-organization one-hot
// indicator columns.
const OrgColumnPrefix = "organization_id_"

// BuildVector maps a single (timestamp, census, organization) tuple into a
// numeric row matching schema order. Columns with no population rule stay 0.
// The timestamp is treated as naive local time, matching the training data.
//
// day_of_week uses the ISO convention: Monday=0 .. Sunday=6.
func BuildVector(ts time.Time, census model.UnitCensus, schema *Schema, orgID *int64) ([]float64, error) {
	if schema == nil || schema.Len() == 0 {
		return nil, ErrEmptySchema
	}

	row := make([]float64, schema.Len())
	set := func(name string, v float64) {
		if i, ok := schema.Index(name); ok {
			row[i] = v
		}
	}

	dayOfWeek := (int(ts.Weekday()) + 6) % 7
	set(ColHourOfDay, float64(ts.Hour()))
	set(ColDayOfWeek, float64(dayOfWeek))
	set(ColMonth, float64(int(ts.Month())))
	if dayOfWeek >= 5 {
		set(ColIsWeekend, 1)
	}

	for name, count := range census {
		set(name, float64(count))
	}

	// One-hot organization identity. An id with no matching column means
	// an unmodeled organization: all indicators stay 0.
	if orgID != nil {
		set(OrgColumnPrefix+strconv.FormatInt(*orgID, 10), 1)
	}

	return row, nil
}
