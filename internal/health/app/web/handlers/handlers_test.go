package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datahealth_api/config/values"
	"datahealth_api/internal/health"
	"datahealth_api/internal/masterdata/models"
	"datahealth_api/internal/quality"
)

type fakeDatabase struct{}

func (f *fakeDatabase) Connect() (*sql.DB, error) { return nil, nil }
func (f *fakeDatabase) Ping() error               { return nil }

func refreshedMonitor(t *testing.T) *health.Monitor {
	t.Helper()
	analyzer := quality.NewAnalyzer(values.DefaultAnalyzerValues())
	source := health.NewDemoSource(42, nil, io.Discard)
	monitor := health.NewMonitor(analyzer, source, nil, nil, io.Discard)
	require.NoError(t, monitor.Refresh(context.Background()))
	return monitor
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	return payload
}

func TestGetOverviewHandler(t *testing.T) {
	handler := NewOverviewHandler(&fakeDatabase{}, refreshedMonitor(t))

	rec := httptest.NewRecorder()
	handler.GetOverviewHandler(rec, httptest.NewRequest(http.MethodGet, "/api/overview", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeBody(t, rec)
	assert.Equal(t, "demo", payload["mode"])
	assert.NotEmpty(t, payload["run_id"])
	assert.Greater(t, payload["average_score"].(float64), 0.0)

	overview := payload["overview"].(map[string]interface{})
	assert.Len(t, overview["rows"], len(models.AllDataTypes()))
}

func TestGetOverviewHandlerBeforeFirstRun(t *testing.T) {
	analyzer := quality.NewAnalyzer(values.DefaultAnalyzerValues())
	source := health.NewDemoSource(42, nil, io.Discard)
	monitor := health.NewMonitor(analyzer, source, nil, nil, io.Discard)
	handler := NewOverviewHandler(&fakeDatabase{}, monitor)

	rec := httptest.NewRecorder()
	handler.GetOverviewHandler(rec, httptest.NewRequest(http.MethodGet, "/api/overview", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetHealthHandler(t *testing.T) {
	handler := NewHealthHandler(&fakeDatabase{}, refreshedMonitor(t))

	rec := httptest.NewRecorder()
	handler.GetHealthHandler(rec, httptest.NewRequest(http.MethodGet, "/api/health?type=products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	report := payload["report"].(map[string]interface{})
	assert.Equal(t, "products", report["data_type"])
	assert.EqualValues(t, 200, report["records"])

	rec = httptest.NewRecorder()
	handler.GetHealthHandler(rec, httptest.NewRequest(http.MethodGet, "/api/health?type=unknown", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetIssuesAndRecommendations(t *testing.T) {
	handler := NewInsightHandler(&fakeDatabase{}, refreshedMonitor(t))

	rec := httptest.NewRecorder()
	handler.GetIssuesHandler(rec, httptest.NewRequest(http.MethodGet, "/api/issues", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeBody(t, rec)
	issues := payload["issues"].(map[string]interface{})
	assert.NotEmpty(t, issues["rows"])

	rec = httptest.NewRecorder()
	handler.GetRecommendationsHandler(rec, httptest.NewRequest(http.MethodGet, "/api/recommendations", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestInsightFilters(t *testing.T) {
	handler := NewInsightHandler(&fakeDatabase{}, refreshedMonitor(t))

	rec := httptest.NewRecorder()
	handler.GetIssuesHandler(rec, httptest.NewRequest(http.MethodGet, "/api/issues?impact=high&type=products", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeBody(t, rec)
	rows := payload["issues"].(map[string]interface{})["rows"].([]interface{})
	for _, raw := range rows {
		row := raw.([]interface{})
		assert.Equal(t, "Products", row[0])
		assert.Equal(t, "High", row[3])
	}

	rec = httptest.NewRecorder()
	handler.GetIssuesHandler(rec, httptest.NewRequest(http.MethodGet, "/api/issues?impact=critical", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	handler.GetRecommendationsHandler(rec, httptest.NewRequest(http.MethodGet, "/api/recommendations?type=orders", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	handler.GetRecommendationsHandler(rec, httptest.NewRequest(http.MethodGet, "/api/recommendations?priority=low", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetReportHandler(t *testing.T) {
	handler := NewReportHandler(&fakeDatabase{}, refreshedMonitor(t))

	rec := httptest.NewRecorder()
	handler.GetReportHandler(rec, httptest.NewRequest(http.MethodGet, "/api/reports/summary.csv", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Body.String(), "data_type")

	rec = httptest.NewRecorder()
	handler.GetReportHandler(rec, httptest.NewRequest(http.MethodGet, "/api/reports/summary.csv?encoding=win1251", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "windows-1251")

	rec = httptest.NewRecorder()
	handler.GetReportHandler(rec, httptest.NewRequest(http.MethodGet, "/api/reports/unknown.csv", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostSyncHandler(t *testing.T) {
	handler := NewSyncHandler(&fakeDatabase{}, refreshedMonitor(t))

	rec := httptest.NewRecorder()
	handler.PostSyncHandler(rec, httptest.NewRequest(http.MethodPost, "/api/sync", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decodeBody(t, rec)
	assert.Equal(t, "demo", payload["mode"])

	rec = httptest.NewRecorder()
	handler.PostSyncHandler(rec, httptest.NewRequest(http.MethodGet, "/api/sync", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGetTrendsHandlerWithoutHistory(t *testing.T) {
	handler := NewTrendsHandler(&fakeDatabase{}, refreshedMonitor(t))

	rec := httptest.NewRecorder()
	handler.GetTrendsHandler(rec, httptest.NewRequest(http.MethodGet, "/api/trends?type=products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	trends := payload["trends"].([]interface{})
	require.Len(t, trends, 1)
	trend := trends[0].(map[string]interface{})
	assert.Equal(t, "insufficient data", trend["direction"])

	rec = httptest.NewRecorder()
	handler.GetTrendsHandler(rec, httptest.NewRequest(http.MethodGet, "/api/trends?window=all", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	payload = decodeBody(t, rec)
	assert.EqualValues(t, 0, payload["window_days"])

	rec = httptest.NewRecorder()
	handler.GetTrendsHandler(rec, httptest.NewRequest(http.MethodGet, "/api/trends?window=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
