package handlers

import (
	"net/http"
	"sync/atomic"

	"datahealth_api/internal/health"
	"datahealth_api/pkg/dbconnect"
)

// SyncHandler triggers a refresh on demand. Only one refresh runs at a
// time, concurrent requests get a conflict response.
type SyncHandler struct {
	dbconnect.Database
	monitor *health.Monitor
	running atomic.Bool
}

func NewSyncHandler(connector dbconnect.Database, monitor *health.Monitor) *SyncHandler {
	return &SyncHandler{
		Database: connector,
		monitor:  monitor,
	}
}

func (h *SyncHandler) Ping() error {
	return h.Database.Ping()
}

func (h *SyncHandler) PostSyncHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if !h.running.CompareAndSwap(false, true) {
		writeError(w, http.StatusConflict, "a refresh is already running")
		return
	}
	defer h.running.Store(false)

	if err := h.monitor.Refresh(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	run := h.monitor.CurrentRun()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":        run.ID,
		"taken_at":      run.TakenAt,
		"mode":          h.monitor.Mode(),
		"average_score": run.AverageOverall(),
	})
}
