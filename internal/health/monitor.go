package health

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"datahealth_api/internal/masterdata/models"
	"datahealth_api/internal/masterdata/storage"
	"datahealth_api/internal/quality"
	"datahealth_api/metrics"
	"datahealth_api/pkg/logger"
)

// DataSource delivers master data tables, either generated locally or
// synced from an external system.
type DataSource interface {
	Sync(ctx context.Context, types []models.DataType) (map[models.DataType]*models.Dataset, error)
	Mode() string
}

// SnapshotStore persists scored results per refresh run.
type SnapshotStore interface {
	Insert(ctx context.Context, s storage.Snapshot) error
	Series(ctx context.Context, t models.DataType, since time.Time) ([]storage.Snapshot, error)
	Latest(ctx context.Context, t models.DataType) (storage.Snapshot, error)
}

// DatasetLoader reads previously persisted datasets.
type DatasetLoader interface {
	Load(ctx context.Context, t models.DataType) (*models.Dataset, error)
}

// Monitor owns the refresh cycle: pull datasets from the source, score
// them, persist a snapshot per data type and publish the scores as
// gauges. The latest run is kept in memory for the API handlers.
type Monitor struct {
	log       logger.Logger
	analyzer  *quality.Analyzer
	source    DataSource
	snapshots SnapshotStore
	types     []models.DataType

	mu       sync.RWMutex
	datasets map[models.DataType]*models.Dataset
	run      *quality.CheckRun
}

func NewMonitor(analyzer *quality.Analyzer, source DataSource, snapshots SnapshotStore, types []models.DataType, writer io.Writer) *Monitor {
	if len(types) == 0 {
		types = models.AllDataTypes()
	}
	return &Monitor{
		log:       logger.NewLogger(writer, "[Monitor]"),
		analyzer:  analyzer,
		source:    source,
		snapshots: snapshots,
		types:     types,
	}
}

// Refresh runs one full cycle. A partial sync still produces a run for
// the types that arrived.
func (m *Monitor) Refresh(ctx context.Context) error {
	datasets, err := m.source.Sync(ctx, m.types)
	metrics.RecordSyncRun(m.source.Mode(), err)
	if err != nil {
		return fmt.Errorf("syncing %s source: %w", m.source.Mode(), err)
	}

	run := m.analyzer.Analyze(datasets)
	m.publishScores(run)

	for t, report := range run.Reports {
		if m.snapshots != nil {
			snapshot := storage.Snapshot{
				RunID:        run.ID,
				TakenAt:      run.TakenAt,
				DataType:     t,
				Overall:      report.Overall,
				Completeness: report.Scores[quality.Completeness],
				Consistency:  report.Scores[quality.Consistency],
				Validity:     report.Scores[quality.Validity],
				Uniqueness:   report.Scores[quality.Uniqueness],
				Timeliness:   report.Scores[quality.Timeliness],
				Accuracy:     report.Scores[quality.Accuracy],
				Records:      report.Records,
				Issues:       len(report.Issues),
			}
			if err := m.snapshots.Insert(ctx, snapshot); err != nil {
				m.log.Log("Failed to store snapshot for %s: %v", t, err)
			}
		}
	}

	m.mu.Lock()
	m.datasets = datasets
	m.run = run
	m.mu.Unlock()

	m.log.Log("Refresh %s complete: %d data types, average score %.2f", run.ID, len(run.Reports), run.AverageOverall())
	return nil
}

// Restore rebuilds the in-memory state from the persisted tables so a
// restart serves the API before the first sync completes. The restored
// run keeps the id and time of the newest stored snapshot instead of
// minting a fresh one.
func (m *Monitor) Restore(ctx context.Context, loader DatasetLoader) error {
	datasets := make(map[models.DataType]*models.Dataset)
	for _, t := range m.types {
		ds, err := loader.Load(ctx, t)
		if err != nil {
			return fmt.Errorf("loading persisted %s: %w", t, err)
		}
		if ds.RecordCount() == 0 {
			continue
		}
		datasets[t] = ds
	}
	if len(datasets) == 0 {
		return nil
	}

	run := m.analyzer.Analyze(datasets)

	if m.snapshots != nil {
		var newest storage.Snapshot
		for t := range datasets {
			snap, err := m.snapshots.Latest(ctx, t)
			if err != nil {
				continue
			}
			if snap.TakenAt.After(newest.TakenAt) {
				newest = snap
			}
		}
		if newest.RunID != "" {
			run.ID = newest.RunID
			run.TakenAt = newest.TakenAt
		}
	}

	m.publishScores(run)

	m.mu.Lock()
	m.datasets = datasets
	m.run = run
	m.mu.Unlock()

	m.log.Log("Restored %d data types from storage, run %s", len(datasets), run.ID)
	return nil
}

func (m *Monitor) publishScores(run *quality.CheckRun) {
	for t, report := range run.Reports {
		metrics.SetQualityScore(string(t), report.Overall)
		for dim, score := range report.Scores {
			metrics.SetDimensionScore(string(t), string(dim), score)
		}
	}
}

// CurrentRun returns the latest analyzer run, or nil before the first
// refresh.
func (m *Monitor) CurrentRun() *quality.CheckRun {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.run
}

// Dataset returns the latest synced dataset for a type.
func (m *Monitor) Dataset(t models.DataType) (*models.Dataset, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ds, ok := m.datasets[t]
	return ds, ok
}

// Types returns the data types the monitor tracks.
func (m *Monitor) Types() []models.DataType {
	return m.types
}

// Mode reports which source feeds the monitor.
func (m *Monitor) Mode() string {
	return m.source.Mode()
}

// Trend reads the snapshot history for a type and condenses it.
func (m *Monitor) Trend(ctx context.Context, t models.DataType, since time.Time) (quality.TrendSummary, error) {
	if m.snapshots == nil {
		return quality.Summarize(t, nil), nil
	}
	series, err := m.snapshots.Series(ctx, t, since)
	if err != nil {
		return quality.TrendSummary{}, fmt.Errorf("reading snapshot series for %s: %w", t, err)
	}
	points := make([]quality.TrendPoint, len(series))
	for i, s := range series {
		points[i] = quality.TrendPoint{
			TakenAt: s.TakenAt,
			Overall: s.Overall,
			Dimensions: map[quality.Dimension]float64{
				quality.Completeness: s.Completeness,
				quality.Consistency:  s.Consistency,
				quality.Validity:     s.Validity,
				quality.Uniqueness:   s.Uniqueness,
				quality.Timeliness:   s.Timeliness,
				quality.Accuracy:     s.Accuracy,
			},
		}
	}
	return quality.Summarize(t, points), nil
}
