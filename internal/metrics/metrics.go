// Package metrics provides Prometheus observability for the forecaster.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the application's private prometheus registry.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// ForecastsTotal counts completed forecast runs.
var ForecastsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "callforecast",
	Name:      "forecasts_total",
	Help:      "Total number of forecast runs completed.",
})

// ForecastsFailed counts failed forecast runs by failure class.
var ForecastsFailed = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "callforecast",
	Name:      "forecasts_failed_total",
	Help:      "Total number of forecast runs that failed, by reason.",
}, []string{"reason"})

// PredictorRows counts individual (hour, unit) predictor invocations.
var PredictorRows = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "callforecast",
	Name:      "predictor_rows_total",
	Help:      "Total number of (hour, unit) rows sent to the predictor.",
})

// ForecastDuration observes end-to-end forecast run time.
var ForecastDuration = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "callforecast",
	Name:      "forecast_duration_seconds",
	Help:      "Duration of a full forecast run.",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
})

// UnitsPerForecast observes how many units each run covers.
var UnitsPerForecast = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "callforecast",
	Name:      "units_per_forecast",
	Help:      "Number of units covered per forecast run.",
	Buckets:   []float64{1, 2, 5, 10, 25, 50},
})

// ConnectedClients tracks live WebSocket subscribers.
var ConnectedClients = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "callforecast",
	Name:      "ws_connected_clients",
	Help:      "Number of currently connected WebSocket clients.",
})
