package handlers

import (
	"net/http"

	"datahealth_api/internal/health"
	"datahealth_api/internal/masterdata/models"
	"datahealth_api/internal/report"
	"datahealth_api/pkg/dbconnect"
)

// HealthHandler serves the full report for a single data type.
type HealthHandler struct {
	dbconnect.Database
	monitor *health.Monitor
}

func NewHealthHandler(connector dbconnect.Database, monitor *health.Monitor) *HealthHandler {
	return &HealthHandler{
		Database: connector,
		monitor:  monitor,
	}
}

func (h *HealthHandler) Ping() error {
	return h.Database.Ping()
}

func (h *HealthHandler) GetHealthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	t, err := models.ParseDataType(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	run := h.monitor.CurrentRun()
	if run == nil {
		writeError(w, http.StatusServiceUnavailable, "no analyzer run available yet")
		return
	}

	rep, ok := run.Reports[t]
	if !ok {
		writeError(w, http.StatusNotFound, "data type is not tracked")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":   run.ID,
		"taken_at": run.TakenAt,
		"report":   rep,
		"chart":    report.DimensionBarChart(rep),
	})
}
