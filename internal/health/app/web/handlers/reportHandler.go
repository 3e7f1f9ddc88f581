package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"datahealth_api/internal/health"
	"datahealth_api/internal/quality"
	"datahealth_api/internal/report"
	"datahealth_api/pkg/dbconnect"
)

// ReportHandler serves CSV exports of the latest run. The optional
// encoding=win1251 query switches to the legacy semicolon separated
// Windows-1251 format.
type ReportHandler struct {
	dbconnect.Database
	monitor *health.Monitor
}

func NewReportHandler(connector dbconnect.Database, monitor *health.Monitor) *ReportHandler {
	return &ReportHandler{
		Database: connector,
		monitor:  monitor,
	}
}

func (h *ReportHandler) Ping() error {
	return h.Database.Ping()
}

func (h *ReportHandler) GetReportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	run := h.monitor.CurrentRun()
	if run == nil {
		writeError(w, http.StatusServiceUnavailable, "no analyzer run available yet")
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/reports/")
	var write func(io.Writer, *quality.CheckRun) error
	switch name {
	case "issues.csv":
		write = report.WriteIssuesCSV
	case "recommendations.csv":
		write = report.WriteRecommendationsCSV
	case "summary.csv":
		write = report.WriteSummaryCSV
	default:
		writeError(w, http.StatusNotFound, "unknown report")
		return
	}

	charset := "utf-8"
	if r.URL.Query().Get("encoding") == "win1251" {
		charset = "windows-1251"
		original := write
		write = func(out io.Writer, run *quality.CheckRun) error {
			return report.WriteLegacyCSV(out, run, original)
		}
	}

	w.Header().Set("Content-Type", fmt.Sprintf("text/csv; charset=%s", charset))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := write(w, run); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
