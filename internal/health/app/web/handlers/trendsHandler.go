package handlers

import (
	"net/http"
	"strconv"
	"time"

	"datahealth_api/internal/health"
	"datahealth_api/internal/masterdata/models"
	"datahealth_api/internal/quality"
	"datahealth_api/internal/report"
	"datahealth_api/pkg/dbconnect"
)

const defaultTrendWindowDays = 30

// TrendsHandler serves historical score movement from the snapshot
// store.
type TrendsHandler struct {
	dbconnect.Database
	monitor *health.Monitor
}

func NewTrendsHandler(connector dbconnect.Database, monitor *health.Monitor) *TrendsHandler {
	return &TrendsHandler{
		Database: connector,
		monitor:  monitor,
	}
}

func (h *TrendsHandler) Ping() error {
	return h.Database.Ping()
}

// GetTrendsHandler accepts an optional type filter and a window in
// days.
func (h *TrendsHandler) GetTrendsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	windowDays := defaultTrendWindowDays
	if raw := r.URL.Query().Get("window"); raw != "" {
		if raw == "all" {
			windowDays = 0
		} else {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				writeError(w, http.StatusBadRequest, "window must be a positive number of days or \"all\"")
				return
			}
			windowDays = parsed
		}
	}

	types := h.monitor.Types()
	if raw := r.URL.Query().Get("type"); raw != "" {
		t, err := models.ParseDataType(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		types = []models.DataType{t}
	}

	// windowDays 0 means the full history.
	var since time.Time
	if windowDays > 0 {
		since = time.Now().UTC().AddDate(0, 0, -windowDays)
	}
	trends := make([]quality.TrendSummary, 0, len(types))
	for _, t := range types {
		trend, err := h.monitor.Trend(r.Context(), t, since)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		trends = append(trends, trend)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"window_days": windowDays,
		"trends":      trends,
		"chart":       report.TrendLineChart(trends),
	})
}
