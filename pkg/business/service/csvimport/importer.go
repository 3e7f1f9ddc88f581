package csvimport

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"datahealth_api/internal/masterdata/storage"
	"datahealth_api/pkg/logger"
)

// Importer refreshes one master data table from a legacy export. The
// export publishes a companion .inf file with its generation time, the
// table is reloaded only when the export is newer than the last import.
type Importer struct {
	InfSource string
	CSVSource string

	Fetcher   Fetcher
	Processor *Processor
	Repo      *storage.DatasetRepository

	log logger.Logger
}

func NewImporter(infSource, csvSource string, fetcher Fetcher, processor *Processor, repo *storage.DatasetRepository, writer io.Writer) *Importer {
	return &Importer{
		InfSource: infSource,
		CSVSource: csvSource,
		Fetcher:   fetcher,
		Processor: processor,
		Repo:      repo,
		log:       logger.NewLogger(writer, "[CSVImport]"),
	}
}

// fetchInfTime reads the export generation time. The .inf file carries
// one timestamp per line, either "2006-01-02 15:04:05" or Unix seconds.
func (imp *Importer) fetchInfTime() (time.Time, error) {
	body, err := imp.Fetcher.Fetch(imp.InfSource)
	if err != nil {
		return time.Time{}, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return time.Time{}, err
	}

	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if t, err := time.Parse("2006-01-02 15:04:05", line); err == nil {
			return t, nil
		}
		if epochSec, err := strconv.ParseInt(line, 10, 64); err == nil {
			return time.Unix(epochSec, 0), nil
		}
	}
	return time.Time{}, fmt.Errorf("no parsable timestamp in inf file %s", imp.InfSource)
}

func (imp *Importer) getStoredTime(ctx context.Context, db *sql.DB) (time.Time, error) {
	var storedTime time.Time
	err := db.QueryRowContext(ctx,
		"SELECT last_update FROM quality.import_metadata WHERE key_name = $1",
		imp.key()).Scan(&storedTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return storedTime, nil
}

func (imp *Importer) key() string {
	return string(imp.Processor.dataType)
}

// Execute imports the export when it is newer than the stored state.
// It returns true when the table was reloaded.
func (imp *Importer) Execute(ctx context.Context, db *sql.DB) (bool, error) {
	modTime, err := imp.fetchInfTime()
	if err != nil {
		return false, fmt.Errorf("reading inf file: %w", err)
	}
	storedTime, err := imp.getStoredTime(ctx, db)
	if err != nil {
		return false, fmt.Errorf("reading import metadata: %w", err)
	}

	if !modTime.After(storedTime) {
		imp.log.Log("Import of %s skipped, export from %s is not newer", imp.key(), modTime.Format(time.RFC3339))
		return false, nil
	}

	imp.log.Log("Importing %s from %s", imp.key(), imp.CSVSource)
	body, err := imp.Fetcher.Fetch(imp.CSVSource)
	if err != nil {
		return false, fmt.Errorf("fetching export: %w", err)
	}
	defer body.Close()

	ds, err := imp.Processor.ProcessCSV(body)
	if err != nil {
		return false, err
	}

	dbCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if err := imp.Repo.Replace(dbCtx, ds); err != nil {
		return false, err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO quality.import_metadata (key_name, last_update)
		VALUES ($1, $2)
		ON CONFLICT (key_name) DO UPDATE SET last_update = EXCLUDED.last_update
	`, imp.key(), modTime)
	if err != nil {
		return false, fmt.Errorf("updating import metadata: %w", err)
	}

	imp.log.Log("Imported %d %s records", ds.RecordCount(), imp.key())
	return true, nil
}
