// Package api exposes the forecast pipeline over HTTP.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"callforecast/internal/forecast"
	"callforecast/internal/model"
	"callforecast/internal/predictor"
)

// Handler serves the forecast API.
type Handler struct {
	svc *forecast.Service
	log zerolog.Logger
}

func New(svc *forecast.Service, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts all routes on the echo instance.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", h.health)
	e.GET("/api/categories", h.categories)
	e.GET("/api/directory", h.directory)
	e.POST("/api/forecast", h.forecast)
}

// ForecastRequest is the POST /api/forecast body.
type ForecastRequest struct {
	Start    string                      `json:"start"`
	Hours    int                         `json:"hours"`
	Units    map[string]model.UnitCensus `json:"units"`
	Selected []string                    `json:"selected,omitempty"`
}

// HourRow is one hour of the combined forecast table.
type HourRow struct {
	Time   string    `json:"time"`
	Values []float64 `json:"values"`
	Total  float64   `json:"total"`
}

// ForecastResponse is the POST /api/forecast reply.
type ForecastResponse struct {
	RunID          string    `json:"run_id"`
	Categories     []string  `json:"categories"`
	Rows           []HourRow `json:"rows"`
	CategoryTotals []float64 `json:"category_totals"`
	GrandTotal     float64   `json:"grand_total"`
	PeakHour       string    `json:"peak_hour"`
	PeakTotal      float64   `json:"peak_total"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (h *Handler) categories(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"categories": h.svc.Categories()})
}

func (h *Handler) directory(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"units": h.svc.Directory().Entries()})
}

func (h *Handler) forecast(c echo.Context) error {
	var req ForecastRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	start, err := model.ParseTimestamp(req.Start)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid start timestamp: " + req.Start})
	}

	res, err := h.svc.Forecast(forecast.Request{
		Start:    start,
		Hours:    req.Hours,
		Units:    model.CensusInput(req.Units),
		Selected: req.Selected,
	})
	if err != nil {
		return c.JSON(statusFor(err), errorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, responseFrom(res))
}

// statusFor maps pipeline errors onto HTTP status codes. Validation
// problems are the caller's fault; predictor failures are not.
func statusFor(err error) int {
	var predErr *forecast.PredictionError
	switch {
	case errors.Is(err, forecast.ErrInvalidDuration),
		errors.Is(err, forecast.ErrNegativeCensus),
		errors.Is(err, forecast.ErrUnknownUnit),
		errors.Is(err, predictor.ErrEmptySchema):
		return http.StatusBadRequest
	case errors.As(err, &predErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func responseFrom(res *forecast.Result) ForecastResponse {
	table := res.Table
	rows := make([]HourRow, len(table.Hours))
	for i, hour := range table.Hours {
		rows[i] = HourRow{
			Time:   hour.Format(time.RFC3339),
			Values: table.Rows[i],
			Total:  table.HourTotals[i],
		}
	}
	return ForecastResponse{
		RunID:          res.RunID,
		Categories:     table.Categories,
		Rows:           rows,
		CategoryTotals: table.CategoryTotals,
		GrandTotal:     table.GrandTotal,
		PeakHour:       table.PeakHour.Format(time.RFC3339),
		PeakTotal:      table.PeakTotal,
	}
}
