package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callforecast/internal/directory"
	"callforecast/internal/forecast"
	"callforecast/internal/model"
	"callforecast/internal/predictor"
)

type stubPredictor struct {
	categories []string
	row        []float64
	err        error
}

func (p *stubPredictor) Categories() []string { return p.categories }

func (p *stubPredictor) Predict(batch [][]float64) ([][]float64, error) {
	if p.err != nil {
		return nil, p.err
	}
	out := make([][]float64, len(batch))
	for i := range out {
		out[i] = append([]float64(nil), p.row...)
	}
	return out, nil
}

func newTestServer(t *testing.T, pred predictor.Predictor) *echo.Echo {
	t.Helper()
	schema, err := predictor.NewSchema([]string{"hour_of_day", "rooms_with_patients", "organization_id_80"})
	require.NoError(t, err)
	dir, err := directory.New([]model.DirectoryEntry{
		{OrganizationID: 80, HospitalName: "General", UnitName: "Floor1"},
	})
	require.NoError(t, err)

	svc := forecast.NewService(schema, pred, dir, zerolog.Nop())
	e := echo.New()
	New(svc, zerolog.Nop()).Register(e)
	return e
}

func postForecast(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/forecast", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestForecast_OK(t *testing.T) {
	e := newTestServer(t, &stubPredictor{categories: []string{"Clinical", "Other"}, row: []float64{2, 1}})

	rec := postForecast(e, `{
		"start": "2024-03-04T08:00",
		"hours": 2,
		"units": {"Floor1": {"rooms_with_patients": 20}}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ForecastResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, []string{"Clinical", "Other"}, resp.Categories)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, []float64{2, 1}, resp.Rows[0].Values)
	assert.InDelta(t, 6.0, resp.GrandTotal, 1e-12)
	assert.Equal(t, resp.Rows[0].Time, resp.PeakHour, "tie resolves to the earliest hour")
}

func TestForecast_InvalidStart(t *testing.T) {
	e := newTestServer(t, &stubPredictor{categories: []string{"A"}, row: []float64{1}})

	rec := postForecast(e, `{"start": "garbage", "hours": 2, "units": {"Floor1": {}}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestForecast_InvalidDuration(t *testing.T) {
	e := newTestServer(t, &stubPredictor{categories: []string{"A"}, row: []float64{1}})

	rec := postForecast(e, `{"start": "2024-03-04T08:00", "hours": 0, "units": {"Floor1": {}}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestForecast_UnknownUnit(t *testing.T) {
	e := newTestServer(t, &stubPredictor{categories: []string{"A"}, row: []float64{1}})

	rec := postForecast(e, `{"start": "2024-03-04T08:00", "hours": 2, "units": {"Basement": {}}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "Basement")
}

func TestForecast_PredictorFailure(t *testing.T) {
	e := newTestServer(t, &stubPredictor{categories: []string{"A"}, err: errors.New("model exploded")})

	rec := postForecast(e, `{"start": "2024-03-04T08:00", "hours": 2, "units": {"Floor1": {}}}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestCategories(t *testing.T) {
	e := newTestServer(t, &stubPredictor{categories: []string{"Clinical", "Other"}, row: []float64{1, 1}})

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Clinical", "Other"}, resp["categories"])
}

func TestDirectory(t *testing.T) {
	e := newTestServer(t, &stubPredictor{categories: []string{"A"}, row: []float64{1}})

	req := httptest.NewRequest(http.MethodGet, "/api/directory", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Units []model.DirectoryEntry `json:"units"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Units, 1)
	assert.Equal(t, "Floor1", resp.Units[0].UnitName)
}

func TestHealth(t *testing.T) {
	e := newTestServer(t, &stubPredictor{categories: []string{"A"}, row: []float64{1}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
