package handlers

import (
	"net/http"

	"datahealth_api/internal/health"
	"datahealth_api/internal/masterdata/models"
	"datahealth_api/internal/quality"
	"datahealth_api/internal/report"
	"datahealth_api/pkg/dbconnect"
)

// InsightHandler serves the flattened issue and recommendation lists.
// Both endpoints accept optional ?type= and severity filters.
type InsightHandler struct {
	dbconnect.Database
	monitor *health.Monitor
}

func NewInsightHandler(connector dbconnect.Database, monitor *health.Monitor) *InsightHandler {
	return &InsightHandler{
		Database: connector,
		monitor:  monitor,
	}
}

func (h *InsightHandler) Ping() error {
	return h.Database.Ping()
}

func (h *InsightHandler) GetIssuesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	run := h.monitor.CurrentRun()
	if run == nil {
		writeError(w, http.StatusServiceUnavailable, "no analyzer run available yet")
		return
	}

	reports, ok := filterByType(w, run.Reports, r.URL.Query().Get("type"))
	if !ok {
		return
	}

	if raw := r.URL.Query().Get("impact"); raw != "" {
		impact, err := quality.ParseImpact(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filtered := make(map[models.DataType]*quality.DatasetReport, len(reports))
		for t, rep := range reports {
			copied := *rep
			copied.Issues = nil
			for _, issue := range rep.Issues {
				if issue.Impact == impact {
					copied.Issues = append(copied.Issues, issue)
				}
			}
			filtered[t] = &copied
		}
		reports = filtered
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id": run.ID,
		"issues": report.IssuesTable(&quality.CheckRun{ID: run.ID, TakenAt: run.TakenAt, Reports: reports}),
	})
}

func (h *InsightHandler) GetRecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	run := h.monitor.CurrentRun()
	if run == nil {
		writeError(w, http.StatusServiceUnavailable, "no analyzer run available yet")
		return
	}

	reports, ok := filterByType(w, run.Reports, r.URL.Query().Get("type"))
	if !ok {
		return
	}

	if raw := r.URL.Query().Get("priority"); raw != "" {
		priority, err := quality.ParseImpact(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filtered := make(map[models.DataType]*quality.DatasetReport, len(reports))
		for t, rep := range reports {
			copied := *rep
			copied.Recommendations = nil
			for _, rec := range rep.Recommendations {
				if rec.Priority == priority {
					copied.Recommendations = append(copied.Recommendations, rec)
				}
			}
			filtered[t] = &copied
		}
		reports = filtered
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":          run.ID,
		"recommendations": report.RecommendationsTable(&quality.CheckRun{ID: run.ID, TakenAt: run.TakenAt, Reports: reports}),
	})
}

// filterByType narrows the report set to one data type when ?type= is
// set. Writes the error response itself and returns ok=false on a bad
// type name.
func filterByType(w http.ResponseWriter, reports map[models.DataType]*quality.DatasetReport, raw string) (map[models.DataType]*quality.DatasetReport, bool) {
	if raw == "" {
		return reports, true
	}
	dataType, err := models.ParseDataType(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	narrowed := make(map[models.DataType]*quality.DatasetReport, 1)
	if rep, ok := reports[dataType]; ok {
		narrowed[dataType] = rep
	}
	return narrowed, true
}
