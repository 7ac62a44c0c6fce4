package ws

import (
	"encoding/json"
	"time"

	"callforecast/internal/forecast"
	"callforecast/internal/model"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeForecastRun = "forecast:run"

	// Server -> Client
	TypeDirectoryLoaded = "directory:loaded"
	TypeForecastResult  = "forecast:result"
	TypeForecastError   = "forecast:error"
)

// Client -> Server messages

type ForecastRunPayload struct {
	Start    string                      `json:"start"`
	Hours    int                         `json:"hours"`
	Units    map[string]model.UnitCensus `json:"units"`
	Selected []string                    `json:"selected,omitempty"`
}

// Server -> Client messages

type UnitInfo struct {
	UnitName       string `json:"unit_name"`
	HospitalName   string `json:"hospital_name"`
	OrganizationID int64  `json:"organization_id"`
}

type DirectoryLoadedPayload struct {
	Units      []UnitInfo `json:"units"`
	Categories []string   `json:"categories"`
}

type HourRow struct {
	Time   string    `json:"time"`
	Values []float64 `json:"values"`
	Total  float64   `json:"total"`
}

type ForecastResultPayload struct {
	RunID          string    `json:"run_id"`
	Categories     []string  `json:"categories"`
	Rows           []HourRow `json:"rows"`
	CategoryTotals []float64 `json:"category_totals"`
	GrandTotal     float64   `json:"grand_total"`
	PeakHour       string    `json:"peak_hour"`
	PeakTotal      float64   `json:"peak_total"`
}

type ForecastErrorPayload struct {
	Message string `json:"message"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

func ResultPayloadFrom(res *forecast.Result) ForecastResultPayload {
	table := res.Table
	rows := make([]HourRow, len(table.Hours))
	for i, hour := range table.Hours {
		rows[i] = HourRow{
			Time:   hour.Format(time.RFC3339),
			Values: table.Rows[i],
			Total:  table.HourTotals[i],
		}
	}
	return ForecastResultPayload{
		RunID:          res.RunID,
		Categories:     table.Categories,
		Rows:           rows,
		CategoryTotals: table.CategoryTotals,
		GrandTotal:     table.GrandTotal,
		PeakHour:       table.PeakHour.Format(time.RFC3339),
		PeakTotal:      table.PeakTotal,
	}
}
