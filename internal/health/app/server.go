package app

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"datahealth_api/config"
	"datahealth_api/internal/health"
	"datahealth_api/internal/health/app/web"
	"datahealth_api/internal/health/app/web/handlers"
	"datahealth_api/internal/ibp"
	"datahealth_api/internal/masterdata/models"
	"datahealth_api/internal/masterdata/storage"
	"datahealth_api/internal/quality"
	"datahealth_api/migrations/infrastructure"
	migrationsMasterdata "datahealth_api/migrations/masterdata"
	migrationsQuality "datahealth_api/migrations/quality"
	"datahealth_api/pkg/business/service/csvimport"
	"datahealth_api/pkg/dbconnect"
	"datahealth_api/pkg/dbconnect/migration"
	"datahealth_api/pkg/middleware"
)

// HealthServer wires the monitor, its data source and the HTTP API
// together.
type HealthServer struct {
	dbconnect.Database
	cfg *config.AppConfig
}

func NewHealthServer(connector dbconnect.Database, cfg *config.AppConfig) *HealthServer {
	return &HealthServer{
		Database: connector,
		cfg:      cfg,
	}
}

func (s *HealthServer) Run() {
	db, err := s.Connect()
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %s", err)
	}
	defer db.Close()

	migrationApply := []migration.MigrationInterface{
		&infrastructure.MigrationsSchema{},
		&migrationsMasterdata.MasterdataSchema{},
		&migrationsMasterdata.ProductsTable{},
		&migrationsMasterdata.LocationsTable{},
		&migrationsMasterdata.CustomersTable{},
		&migrationsMasterdata.SuppliersTable{},
		&migrationsMasterdata.TimeProfilesTable{},
		&migrationsMasterdata.ResourcesTable{},
		&migrationsQuality.QualitySchema{},
		&migrationsQuality.SnapshotsTable{},
		&migrationsQuality.ImportMetadataTable{},
	}
	for _, m := range migrationApply {
		if err := m.UpMigration(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	}
	log.Println("Migrations applied successfully!")

	datasetRepo := storage.NewDatasetRepository(db)
	snapshotRepo := storage.NewSnapshotRepository(db)
	analyzer := quality.NewAnalyzer(s.cfg.Analyzer)

	s.runImports(db, datasetRepo)

	types := s.dataTypes()
	source := s.buildSource(datasetRepo)
	monitor := health.NewMonitor(analyzer, source, snapshotRepo, types, os.Stdout)

	ctx := context.Background()
	if err := monitor.Restore(ctx, datasetRepo); err != nil {
		log.Printf("Restore from storage failed: %v", err)
	}
	if err := monitor.Refresh(ctx); err != nil {
		log.Printf("Initial refresh failed: %v", err)
	}

	if s.cfg.Server.SyncIntervalMinutes > 0 {
		go s.schedule(ctx, monitor)
	}

	web.SetupRoutes(
		handlers.NewOverviewHandler(s.Database, monitor),
		handlers.NewHealthHandler(s.Database, monitor),
		handlers.NewInsightHandler(s.Database, monitor),
		handlers.NewTrendsHandler(s.Database, monitor),
		handlers.NewReportHandler(s.Database, monitor),
		handlers.NewSyncHandler(s.Database, monitor),
	)

	log.Printf("Starting health server on %s in %s mode", s.cfg.Server.Addr, source.Mode())
	if err := http.ListenAndServe(s.cfg.Server.Addr, middleware.PrometheusMiddleware(http.DefaultServeMux)); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// runImports loads any configured legacy CSV feeds before the first
// refresh. A failing feed is logged and skipped.
func (s *HealthServer) runImports(db *sql.DB, repo *storage.DatasetRepository) {
	for _, imp := range s.cfg.Imports {
		t, err := models.ParseDataType(imp.DataType)
		if err != nil {
			log.Printf("Skipping import with invalid data type: %v", err)
			continue
		}

		processor := csvimport.NewProcessor(t).SetRenaming(imp.Renaming)
		importer := csvimport.NewImporter(
			imp.InfSource, imp.CSVSource,
			csvimport.NewFetcher(imp.CSVSource),
			processor, repo, os.Stdout)

		imported, err := importer.Execute(context.Background(), db)
		if err != nil {
			log.Printf("Import of %s failed: %v", imp.DataType, err)
			continue
		}
		if imported {
			log.Printf("Imported %s from %s", imp.DataType, imp.CSVSource)
		}
	}
}

func (s *HealthServer) dataTypes() []models.DataType {
	if len(s.cfg.Server.DataTypes) == 0 {
		return models.AllDataTypes()
	}
	var types []models.DataType
	for _, raw := range s.cfg.Server.DataTypes {
		t, err := models.ParseDataType(raw)
		if err != nil {
			log.Fatalf("Invalid data type in config: %v", err)
		}
		types = append(types, t)
	}
	return types
}

func (s *HealthServer) buildSource(repo *storage.DatasetRepository) health.DataSource {
	if s.cfg.Server.DemoMode {
		return health.NewDemoSource(s.cfg.Server.DemoSeed, repo, os.Stdout)
	}

	connector := ibp.NewConnector(s.cfg.IBP, os.Stdout)
	if err := connector.TestConnection(context.Background()); err != nil {
		log.Printf("IBP connection test failed: %v", err)
	}
	syncService := ibp.NewSyncService(connector, s.cfg.IBP.WorkerCount, os.Stdout)
	return health.NewIBPSource(syncService, repo, os.Stdout)
}

func (s *HealthServer) schedule(ctx context.Context, monitor *health.Monitor) {
	interval := time.Duration(s.cfg.Server.SyncIntervalMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		if err := monitor.Refresh(ctx); err != nil {
			log.Printf("Scheduled refresh failed: %v", err)
		}
	}
}
