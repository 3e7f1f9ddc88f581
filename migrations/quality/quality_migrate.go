package quality

import (
	"database/sql"

	"datahealth_api/migrations/infrastructure"
)

const (
	SchemaMigration         = "quality.schema"
	SnapshotsMigration      = "quality.snapshots"
	ImportMetadataMigration = "quality.import_metadata"
)

type QualitySchema struct{}

func (m *QualitySchema) UpMigration(db *sql.DB) error {
	return infrastructure.Apply(db, SchemaMigration, `
        CREATE SCHEMA IF NOT EXISTS quality;
        `)
}

type SnapshotsTable struct{}

func (m *SnapshotsTable) UpMigration(db *sql.DB) error {
	return infrastructure.Apply(db, SnapshotsMigration, `
        CREATE TABLE IF NOT EXISTS quality.snapshots (
            id SERIAL PRIMARY KEY,
            run_id VARCHAR(36) NOT NULL,
            taken_at TIMESTAMP WITH TIME ZONE NOT NULL,
            data_type VARCHAR(30) NOT NULL,
            overall_score DOUBLE PRECISION NOT NULL,
            completeness DOUBLE PRECISION NOT NULL,
            consistency DOUBLE PRECISION NOT NULL,
            validity DOUBLE PRECISION NOT NULL,
            uniqueness DOUBLE PRECISION NOT NULL,
            timeliness DOUBLE PRECISION NOT NULL,
            accuracy DOUBLE PRECISION NOT NULL,
            record_count INTEGER NOT NULL,
            issue_count INTEGER NOT NULL
        );
        CREATE INDEX IF NOT EXISTS snapshots_type_taken_at_idx
            ON quality.snapshots(data_type, taken_at);
        `)
}

type ImportMetadataTable struct{}

func (m *ImportMetadataTable) UpMigration(db *sql.DB) error {
	return infrastructure.Apply(db, ImportMetadataMigration, `
        CREATE TABLE IF NOT EXISTS quality.import_metadata (
            key_name VARCHAR(100) PRIMARY KEY,
            last_update TIMESTAMP WITH TIME ZONE NOT NULL
        );
        `)
}
