package httpadapter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adlytics/internal/core/domain"
	"adlytics/internal/core/port"
	"adlytics/internal/metrics"
)

type stubReports struct {
	report *port.Report
	kpis   domain.KPISet
	trend  domain.DailyTrend
	err    error
}

func (s *stubReports) BuildReport(context.Context, port.ReportReq) (*port.Report, error) {
	return s.report, s.err
}

func (s *stubReports) Overview(context.Context, port.ReportReq) (domain.KPISet, error) {
	return s.kpis, s.err
}

func (s *stubReports) Daily(context.Context, port.ReportReq) (domain.DailyTrend, error) {
	return s.trend, s.err
}

type stubPredicts struct {
	result      *port.TrainResult
	predictions []domain.Prediction
	trainErr    error
	predictErr  error

	gotColumns []string
}

func (s *stubPredicts) Train(context.Context, port.ReportReq) (*port.TrainResult, error) {
	return s.result, s.trainErr
}

func (s *stubPredicts) Predict(_ context.Context, _ []domain.Record, columns []string) ([]domain.Prediction, error) {
	s.gotColumns = columns
	return s.predictions, s.predictErr
}

func newTestHandler(reports port.ReportUseCase, predicts port.PredictUseCase) *Handler {
	registry := prometheus.NewRegistry()
	return NewHandler(reports, predicts, slog.New(slog.NewTextHandler(io.Discard, nil)), metrics.New(registry), registry)
}

func doRequest(h *Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func TestBuildReportEndpoint(t *testing.T) {
	reports := &stubReports{report: &port.Report{
		ID:              "r-1",
		GeneratedAt:     time.Now().UTC(),
		Rows:            2,
		KPIs:            domain.KPISet{Impressions: 10000, CTR: 2},
		Trend:           domain.DailyTrend{{Revenue: 100, CTR: 2, ROAS: 3}},
		Narrative:       "all good",
		NarrativeSource: "rules",
	}}
	h := newTestHandler(reports, &stubPredicts{})

	rec := doRequest(h, http.MethodPost, "/api/v1/report", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "r-1", body["report_id"])
	assert.Equal(t, "rules", body["narrative_source"])
}

func TestBuildReportEmptyTrendIs422(t *testing.T) {
	h := newTestHandler(&stubReports{err: domain.ErrEmptyTrend}, &stubPredicts{})

	rec := doRequest(h, http.MethodPost, "/api/v1/report", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestBuildReportBadDateIs400(t *testing.T) {
	h := newTestHandler(&stubReports{}, &stubPredicts{})

	rec := doRequest(h, http.MethodPost, "/api/v1/report?from=junk", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsDailyRendersNonFiniteAsNull(t *testing.T) {
	d, _ := time.Parse("2006-01-02", "2025-06-01")
	reports := &stubReports{trend: domain.DailyTrend{
		{Date: d, Impressions: 0, Clicks: 5, CTR: math.Inf(1), ROAS: math.NaN()},
	}}
	h := newTestHandler(reports, &stubPredicts{})

	rec := doRequest(h, http.MethodGet, "/api/v1/stats/daily", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Nil(t, body[0]["ctr"])
	assert.Nil(t, body[0]["roas"])
	assert.Equal(t, "2025-06-01", body[0]["date"])
}

func TestStatsOverviewEndpoint(t *testing.T) {
	reports := &stubReports{kpis: domain.KPISet{Impressions: 500, Clicks: 10, CTR: 2}}
	h := newTestHandler(reports, &stubPredicts{})

	rec := doRequest(h, http.MethodGet, "/api/v1/stats/overview", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 500, body["total_impressions"])
	assert.EqualValues(t, 2, body["ctr"])
}

func TestModelTrainMissingColumnIs422(t *testing.T) {
	predicts := &stubPredicts{trainErr: &domain.MissingInputError{Stage: "train", Field: "cost"}}
	h := newTestHandler(&stubReports{}, predicts)

	rec := doRequest(h, http.MethodPost, "/api/v1/model/train", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "cost")
}

func TestModelPredictNoModelIs409(t *testing.T) {
	predicts := &stubPredicts{predictErr: domain.ErrModelUnavailable}
	h := newTestHandler(&stubReports{}, predicts)

	rec := doRequest(h, http.MethodPost, "/api/v1/model/predict", `{"rows":[{"impressions":100}]}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestModelPredictReportsPresentColumns(t *testing.T) {
	predicts := &stubPredicts{predictions: []domain.Prediction{
		{Record: domain.Record{Impressions: 100, Device: "Unknown", Country: "Unknown"}, PredictedClicks: 3, PredictedCTR: 3},
	}}
	h := newTestHandler(&stubReports{}, predicts)

	rec := doRequest(h, http.MethodPost, "/api/v1/model/predict",
		`{"rows":[{"impressions":100,"cost":5}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// device and country were omitted, so the column list excludes them
	assert.Equal(t, []string{domain.ColImpressions, domain.ColCost}, predicts.gotColumns)

	var body map[string][]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body["predictions"], 1)
	assert.EqualValues(t, 3, body["predictions"][0]["predicted_clicks"])
}

func TestModelPredictBadJSONIs400(t *testing.T) {
	h := newTestHandler(&stubReports{}, &stubPredicts{})
	rec := doRequest(h, http.MethodPost, "/api/v1/model/predict", "{")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(&stubReports{}, &stubPredicts{})
	rec := doRequest(h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
