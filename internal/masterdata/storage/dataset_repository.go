package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"datahealth_api/internal/masterdata/models"
)

// DatasetRepository persists master data tables under the masterdata
// schema. Each refresh fully replaces the table contents, the tables
// mirror the external system rather than owning the data.
type DatasetRepository struct {
	db *sql.DB
}

func NewDatasetRepository(db *sql.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

// Load reads the full table for the given data type into a dataset.
func (r *DatasetRepository) Load(ctx context.Context, t models.DataType) (*models.Dataset, error) {
	columns := models.Schema(t)
	if columns == nil {
		return nil, fmt.Errorf("no schema for data type %q", t)
	}

	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}

	query := fmt.Sprintf("SELECT %s FROM masterdata.%s", strings.Join(names, ", "), t.Table())
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying masterdata.%s: %w", t.Table(), err)
	}
	defer rows.Close()

	ds := models.NewDataset(t, columns)
	for rows.Next() {
		cells, targets := scanTargets(columns)
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scanning masterdata.%s row: %w", t.Table(), err)
		}
		if err := ds.AppendRow(collectCells(columns, cells)); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading masterdata.%s rows: %w", t.Table(), err)
	}
	return ds, nil
}

// Replace swaps the table contents for the dataset inside one
// transaction, using COPY for the insert.
func (r *DatasetRepository) Replace(ctx context.Context, ds *models.Dataset) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM masterdata.%s", ds.Type.Table())); err != nil {
		return fmt.Errorf("clearing masterdata.%s: %w", ds.Type.Table(), err)
	}

	names := make([]string, len(ds.Columns))
	for i, col := range ds.Columns {
		names[i] = col.Name
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyInSchema("masterdata", ds.Type.Table(), names...))
	if err != nil {
		return fmt.Errorf("preparing copy into masterdata.%s: %w", ds.Type.Table(), err)
	}

	for _, row := range ds.Rows {
		args := make([]interface{}, len(row))
		for i, cell := range row {
			args[i] = cell.Driver()
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			stmt.Close()
			return fmt.Errorf("copying row into masterdata.%s: %w", ds.Type.Table(), err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("flushing copy into masterdata.%s: %w", ds.Type.Table(), err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("closing copy statement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing masterdata.%s replace: %w", ds.Type.Table(), err)
	}
	return nil
}

func scanTargets(columns []models.Column) ([]interface{}, []interface{}) {
	cells := make([]interface{}, len(columns))
	targets := make([]interface{}, len(columns))
	for i, col := range columns {
		switch col.Kind {
		case models.KindNumeric:
			cells[i] = &sql.NullFloat64{}
		case models.KindBool:
			cells[i] = &sql.NullBool{}
		case models.KindTimestamp:
			cells[i] = &sql.NullTime{}
		default:
			cells[i] = &sql.NullString{}
		}
		targets[i] = cells[i]
	}
	return cells, targets
}

func collectCells(columns []models.Column, scanned []interface{}) []models.Value {
	cells := make([]models.Value, len(columns))
	for i, col := range columns {
		switch col.Kind {
		case models.KindNumeric:
			v := scanned[i].(*sql.NullFloat64)
			if v.Valid {
				cells[i] = models.NumberValue(v.Float64)
			} else {
				cells[i] = models.NullValue()
			}
		case models.KindBool:
			v := scanned[i].(*sql.NullBool)
			if v.Valid {
				cells[i] = models.BoolValue(v.Bool)
			} else {
				cells[i] = models.NullValue()
			}
		case models.KindTimestamp:
			v := scanned[i].(*sql.NullTime)
			if v.Valid {
				cells[i] = models.TimeValue(v.Time)
			} else {
				cells[i] = models.NullValue()
			}
		default:
			v := scanned[i].(*sql.NullString)
			if v.Valid {
				cells[i] = models.TextValue(v.String)
			} else {
				cells[i] = models.NullValue()
			}
		}
	}
	return cells
}
