package health

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datahealth_api/config/values"
	"datahealth_api/internal/masterdata/demo"
	"datahealth_api/internal/masterdata/models"
	"datahealth_api/internal/masterdata/storage"
	"datahealth_api/internal/quality"
)

type fakeSource struct {
	datasets map[models.DataType]*models.Dataset
	err      error
	calls    int
}

func (s *fakeSource) Mode() string { return "fake" }

func (s *fakeSource) Sync(ctx context.Context, types []models.DataType) (map[models.DataType]*models.Dataset, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.datasets, nil
}

type fakeSnapshots struct {
	inserted []storage.Snapshot
}

func (s *fakeSnapshots) Insert(ctx context.Context, snapshot storage.Snapshot) error {
	s.inserted = append(s.inserted, snapshot)
	return nil
}

func (s *fakeSnapshots) Series(ctx context.Context, t models.DataType, since time.Time) ([]storage.Snapshot, error) {
	var series []storage.Snapshot
	for _, snapshot := range s.inserted {
		if snapshot.DataType == t && !snapshot.TakenAt.Before(since) {
			series = append(series, snapshot)
		}
	}
	return series, nil
}

func (s *fakeSnapshots) Latest(ctx context.Context, t models.DataType) (storage.Snapshot, error) {
	var newest storage.Snapshot
	found := false
	for _, snapshot := range s.inserted {
		if snapshot.DataType == t && (!found || snapshot.TakenAt.After(newest.TakenAt)) {
			newest = snapshot
			found = true
		}
	}
	if !found {
		return storage.Snapshot{}, sql.ErrNoRows
	}
	return newest, nil
}

type fakeLoader struct {
	datasets map[models.DataType]*models.Dataset
}

func (l *fakeLoader) Load(ctx context.Context, t models.DataType) (*models.Dataset, error) {
	if ds, ok := l.datasets[t]; ok {
		return ds, nil
	}
	return models.NewDataset(t, models.Schema(t)), nil
}

func testMonitor(source DataSource, snapshots SnapshotStore) *Monitor {
	analyzer := quality.NewAnalyzer(values.DefaultAnalyzerValues())
	return NewMonitor(analyzer, source, snapshots, []models.DataType{models.Products}, io.Discard)
}

func TestRefreshStoresRunAndSnapshots(t *testing.T) {
	datasets := map[models.DataType]*models.Dataset{
		models.Products: demo.NewGenerator(42).GenerateProducts(),
	}
	source := &fakeSource{datasets: datasets}
	snapshots := &fakeSnapshots{}
	monitor := testMonitor(source, snapshots)

	require.Nil(t, monitor.CurrentRun())
	require.NoError(t, monitor.Refresh(context.Background()))

	run := monitor.CurrentRun()
	require.NotNil(t, run)
	require.Contains(t, run.Reports, models.Products)
	assert.Equal(t, 200, run.Reports[models.Products].Records)

	require.Len(t, snapshots.inserted, 1)
	snapshot := snapshots.inserted[0]
	assert.Equal(t, run.ID, snapshot.RunID)
	assert.Equal(t, models.Products, snapshot.DataType)
	assert.InDelta(t, run.Reports[models.Products].Overall, snapshot.Overall, 0.001)

	ds, ok := monitor.Dataset(models.Products)
	require.True(t, ok)
	assert.Equal(t, 200, ds.RecordCount())
}

func TestRefreshSourceFailure(t *testing.T) {
	source := &fakeSource{err: errors.New("tenant unavailable")}
	monitor := testMonitor(source, &fakeSnapshots{})

	err := monitor.Refresh(context.Background())
	assert.Error(t, err)
	assert.Nil(t, monitor.CurrentRun())
}

func TestTrendFromSnapshots(t *testing.T) {
	snapshots := &fakeSnapshots{}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, score := range []float64{6.0, 6.4, 7.0} {
		require.NoError(t, snapshots.Insert(context.Background(), storage.Snapshot{
			RunID:    "run",
			TakenAt:  base.AddDate(0, 0, i),
			DataType: models.Products,
			Overall:  score,
		}))
	}
	monitor := testMonitor(&fakeSource{}, snapshots)

	trend, err := monitor.Trend(context.Background(), models.Products, base.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Equal(t, "increased", trend.Direction)
	assert.InDelta(t, 1.0, trend.Change, 0.001)
	assert.Len(t, trend.Points, 3)
}

func TestRestoreFromStorage(t *testing.T) {
	taken := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	snapshots := &fakeSnapshots{}
	require.NoError(t, snapshots.Insert(context.Background(), storage.Snapshot{
		RunID:    "earlier-run",
		TakenAt:  taken,
		DataType: models.Products,
		Overall:  7.1,
	}))

	loader := &fakeLoader{datasets: map[models.DataType]*models.Dataset{
		models.Products: demo.NewGenerator(42).GenerateProducts(),
	}}
	monitor := testMonitor(&fakeSource{}, snapshots)

	require.NoError(t, monitor.Restore(context.Background(), loader))

	run := monitor.CurrentRun()
	require.NotNil(t, run)
	assert.Equal(t, "earlier-run", run.ID)
	assert.Equal(t, taken, run.TakenAt)
	require.Contains(t, run.Reports, models.Products)
	assert.Equal(t, 200, run.Reports[models.Products].Records)

	ds, ok := monitor.Dataset(models.Products)
	require.True(t, ok)
	assert.Equal(t, 200, ds.RecordCount())

	// Restoring replays stored state, it writes no new snapshots.
	assert.Len(t, snapshots.inserted, 1)
}

func TestRestoreWithEmptyTables(t *testing.T) {
	monitor := testMonitor(&fakeSource{}, &fakeSnapshots{})

	require.NoError(t, monitor.Restore(context.Background(), &fakeLoader{}))
	assert.Nil(t, monitor.CurrentRun())
}

func TestDemoSourceFiltersTypes(t *testing.T) {
	source := NewDemoSource(42, nil, io.Discard)

	datasets, err := source.Sync(context.Background(), []models.DataType{models.Products, models.Customers})
	require.NoError(t, err)
	assert.Len(t, datasets, 2)
	assert.Contains(t, datasets, models.Products)
	assert.Contains(t, datasets, models.Customers)
	assert.NotContains(t, datasets, models.Locations)
	assert.Equal(t, "demo", source.Mode())
}
