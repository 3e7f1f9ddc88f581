package metrics

import "sync/atomic"

// SyncMetrics tracks the progress of a master data sync run.
type SyncMetrics struct {
	FetchedTypes    atomic.Int32
	ErroredTypes    atomic.Int32
	UpsertedRecords atomic.Int64
}
