package ibp

import (
	"context"
	"fmt"
	"io"
	"sync"

	"datahealth_api/internal/masterdata/models"
	"datahealth_api/metrics"
	"datahealth_api/pkg/logger"
)

// SyncService downloads several master data tables concurrently. One
// failing table does not abort the others.
type SyncService struct {
	connector *Connector
	log       logger.Logger
	workers   int
}

func NewSyncService(connector *Connector, workers int, writer io.Writer) *SyncService {
	if workers <= 0 {
		workers = 3
	}
	return &SyncService{
		connector: connector,
		log:       logger.NewLogger(writer, "[IBPSync]"),
		workers:   workers,
	}
}

// Sync fetches the given data types through a bounded worker pool and
// returns the tables that arrived. An error is returned only when
// nothing could be fetched.
func (s *SyncService) Sync(ctx context.Context, types []models.DataType) (map[models.DataType]*models.Dataset, error) {
	var syncMetrics metrics.SyncMetrics

	jobs := make(chan models.DataType)
	results := make(map[models.DataType]*models.Dataset, len(types))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				ds, err := s.connector.FetchMasterData(ctx, t)
				if err != nil {
					syncMetrics.ErroredTypes.Add(1)
					s.log.Log("Failed to fetch %s: %v", t, err)
					continue
				}
				syncMetrics.FetchedTypes.Add(1)
				syncMetrics.UpsertedRecords.Add(int64(ds.RecordCount()))

				mu.Lock()
				results[t] = ds
				mu.Unlock()
			}
		}()
	}

	for _, t := range types {
		jobs <- t
	}
	close(jobs)
	wg.Wait()

	s.log.Log("Sync finished: %d fetched, %d failed, %d records",
		syncMetrics.FetchedTypes.Load(), syncMetrics.ErroredTypes.Load(), syncMetrics.UpsertedRecords.Load())

	if len(results) == 0 && len(types) > 0 {
		return nil, fmt.Errorf("all %d data types failed to sync", len(types))
	}
	return results, nil
}
