package infrastructure

import (
	"database/sql"
	"fmt"
	"log"
)

// MigrationsSchema bootstraps the bookkeeping table every other
// migration records itself in. It must run first.
type MigrationsSchema struct{}

func (m *MigrationsSchema) UpMigration(db *sql.DB) error {
	query := `
        CREATE SCHEMA IF NOT EXISTS migrations;
        CREATE TABLE IF NOT EXISTS migrations.migrations (
            name VARCHAR(255) PRIMARY KEY,
            time TIMESTAMP WITH TIME ZONE NOT NULL
        );
        `
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations bookkeeping table: %w", err)
	}
	return nil
}

// Apply runs a named migration once and records it.
func Apply(db *sql.DB, name, query string) error {
	var migrationExists bool
	err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM migrations.migrations WHERE name = $1)", name).Scan(&migrationExists)
	if err != nil {
		return fmt.Errorf("failed to check migration status: %w", err)
	}

	if migrationExists {
		log.Printf("Migration '%s' already completed. Skipping.", name)
		return nil
	}

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to apply migration '%s': %w", name, err)
	}

	if _, err := db.Exec("INSERT INTO migrations.migrations (name, time) VALUES ($1, current_timestamp)", name); err != nil {
		return fmt.Errorf("failed to mark '%s' migration as complete: %w", name, err)
	}

	log.Printf("Migration '%s' completed successfully.", name)
	return nil
}
