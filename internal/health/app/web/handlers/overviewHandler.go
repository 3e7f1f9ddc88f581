package handlers

import (
	"net/http"

	"datahealth_api/internal/health"
	"datahealth_api/internal/report"
	"datahealth_api/pkg/dbconnect"
)

// OverviewHandler serves the dashboard landing data: the overview
// table and the per-type score chart from the latest run.
type OverviewHandler struct {
	dbconnect.Database
	monitor *health.Monitor
}

func NewOverviewHandler(connector dbconnect.Database, monitor *health.Monitor) *OverviewHandler {
	return &OverviewHandler{
		Database: connector,
		monitor:  monitor,
	}
}

func (h *OverviewHandler) Ping() error {
	return h.Database.Ping()
}

func (h *OverviewHandler) GetOverviewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	run := h.monitor.CurrentRun()
	if run == nil {
		writeError(w, http.StatusServiceUnavailable, "no analyzer run available yet")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":        run.ID,
		"taken_at":      run.TakenAt,
		"mode":          h.monitor.Mode(),
		"average_score": run.AverageOverall(),
		"overview":      report.OverviewTable(run),
	})
}

func (h *OverviewHandler) GetScoresHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	run := h.monitor.CurrentRun()
	if run == nil {
		writeError(w, http.StatusServiceUnavailable, "no analyzer run available yet")
		return
	}

	scores := make(map[string]float64, len(run.Reports))
	for t, rep := range run.Reports {
		scores[string(t)] = rep.Overall
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id": run.ID,
		"scores": scores,
		"chart":  report.ScoresBarChart(run),
	})
}
