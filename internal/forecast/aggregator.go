package forecast

import "time"

// Table is the combined forecast for a window: one row per hour, one
// column per call category, summed across the selected units.
type Table struct {
	Hours      []time.Time
	Categories []string
	Rows       [][]float64

	HourTotals     []float64
	CategoryTotals []float64
	GrandTotal     float64

	// PeakHour is the hour with the highest summed total; ties resolve
	// to the earliest hour. Zero when the table has no hours.
	PeakHour  time.Time
	PeakTotal float64
}

// Aggregate sums per-unit prediction rows across the selected units.
// Units in selected but absent from preds are ignored, so a view filter
// over a subset only re-sums already-computed rows. An empty selection
// yields an all-zero table.
func Aggregate(preds *Predictions, selected []string) *Table {
	table := &Table{
		Hours:          append([]time.Time(nil), preds.Hours...),
		Categories:     append([]string(nil), preds.Categories...),
		Rows:           make([][]float64, len(preds.Hours)),
		HourTotals:     make([]float64, len(preds.Hours)),
		CategoryTotals: make([]float64, len(preds.Categories)),
	}
	for i := range table.Rows {
		table.Rows[i] = make([]float64, len(preds.Categories))
	}

	for _, unit := range selected {
		rows, ok := preds.ByUnit[unit]
		if !ok {
			continue
		}
		for i, row := range rows {
			for j, v := range row {
				table.Rows[i][j] += v
			}
		}
	}

	for i, row := range table.Rows {
		var total float64
		for j, v := range row {
			total += v
			table.CategoryTotals[j] += v
		}
		table.HourTotals[i] = total
		table.GrandTotal += total

		if i == 0 || total > table.PeakTotal {
			table.PeakTotal = total
			table.PeakHour = table.Hours[i]
		}
	}

	return table
}
