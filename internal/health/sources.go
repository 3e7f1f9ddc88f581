package health

import (
	"context"
	"io"

	"datahealth_api/internal/ibp"
	"datahealth_api/internal/masterdata/demo"
	"datahealth_api/internal/masterdata/models"
	"datahealth_api/internal/masterdata/storage"
	"datahealth_api/pkg/logger"
)

// DatasetWriter persists synced datasets. Optional on both sources, a
// monitor without a database keeps everything in memory.
type DatasetWriter interface {
	Replace(ctx context.Context, ds *models.Dataset) error
}

// DemoSource generates deterministic sample data instead of calling an
// external system.
type DemoSource struct {
	seed int64
	repo DatasetWriter
	log  logger.Logger
}

func NewDemoSource(seed int64, repo DatasetWriter, writer io.Writer) *DemoSource {
	return &DemoSource{
		seed: seed,
		repo: repo,
		log:  logger.NewLogger(writer, "[DemoSource]"),
	}
}

func (s *DemoSource) Mode() string { return "demo" }

func (s *DemoSource) Sync(ctx context.Context, types []models.DataType) (map[models.DataType]*models.Dataset, error) {
	all := demo.NewGenerator(s.seed).GenerateAll()

	datasets := make(map[models.DataType]*models.Dataset, len(types))
	for _, t := range types {
		ds, ok := all[t]
		if !ok {
			continue
		}
		datasets[t] = ds
		if s.repo != nil {
			if err := s.repo.Replace(ctx, ds); err != nil {
				s.log.Log("Failed to persist %s: %v", t, err)
			}
		}
	}
	return datasets, nil
}

// IBPSource pulls master data from a SAP IBP tenant.
type IBPSource struct {
	sync *ibp.SyncService
	repo DatasetWriter
	log  logger.Logger
}

func NewIBPSource(syncService *ibp.SyncService, repo DatasetWriter, writer io.Writer) *IBPSource {
	return &IBPSource{
		sync: syncService,
		repo: repo,
		log:  logger.NewLogger(writer, "[IBPSource]"),
	}
}

func (s *IBPSource) Mode() string { return "ibp" }

func (s *IBPSource) Sync(ctx context.Context, types []models.DataType) (map[models.DataType]*models.Dataset, error) {
	datasets, err := s.sync.Sync(ctx, types)
	if err != nil {
		return nil, err
	}
	if s.repo != nil {
		for t, ds := range datasets {
			if err := s.repo.Replace(ctx, ds); err != nil {
				s.log.Log("Failed to persist %s: %v", t, err)
			}
		}
	}
	return datasets, nil
}

var (
	_ DatasetWriter = (*storage.DatasetRepository)(nil)
	_ DatasetLoader = (*storage.DatasetRepository)(nil)
	_ SnapshotStore = (*storage.SnapshotRepository)(nil)
)
