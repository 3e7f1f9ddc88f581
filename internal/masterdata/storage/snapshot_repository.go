package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"datahealth_api/internal/masterdata/models"
)

// Snapshot is one scored analyzer result for a data type, stored per
// refresh run so the trend endpoints can read a history.
type Snapshot struct {
	RunID        string
	TakenAt      time.Time
	DataType     models.DataType
	Overall      float64
	Completeness float64
	Consistency  float64
	Validity     float64
	Uniqueness   float64
	Timeliness   float64
	Accuracy     float64
	Records      int
	Issues       int
}

type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Insert(ctx context.Context, s Snapshot) error {
	const query = `
		INSERT INTO quality.snapshots
			(run_id, taken_at, data_type, overall_score,
			 completeness, consistency, validity, uniqueness, timeliness, accuracy,
			 record_count, issue_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		s.RunID, s.TakenAt, string(s.DataType), s.Overall,
		s.Completeness, s.Consistency, s.Validity, s.Uniqueness, s.Timeliness, s.Accuracy,
		s.Records, s.Issues)
	if err != nil {
		return fmt.Errorf("inserting quality snapshot for %s: %w", s.DataType, err)
	}
	return nil
}

// Series returns snapshots for a data type since the given time,
// oldest first.
func (r *SnapshotRepository) Series(ctx context.Context, t models.DataType, since time.Time) ([]Snapshot, error) {
	const query = `
		SELECT run_id, taken_at, data_type, overall_score,
		       completeness, consistency, validity, uniqueness, timeliness, accuracy,
		       record_count, issue_count
		FROM quality.snapshots
		WHERE data_type = $1 AND taken_at >= $2
		ORDER BY taken_at ASC`

	rows, err := r.db.QueryContext(ctx, query, string(t), since)
	if err != nil {
		return nil, fmt.Errorf("querying quality snapshots for %s: %w", t, err)
	}
	defer rows.Close()

	var series []Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading quality snapshots: %w", err)
	}
	return series, nil
}

// Latest returns the most recent snapshot for a data type, or
// sql.ErrNoRows when none exist.
func (r *SnapshotRepository) Latest(ctx context.Context, t models.DataType) (Snapshot, error) {
	const query = `
		SELECT run_id, taken_at, data_type, overall_score,
		       completeness, consistency, validity, uniqueness, timeliness, accuracy,
		       record_count, issue_count
		FROM quality.snapshots
		WHERE data_type = $1
		ORDER BY taken_at DESC
		LIMIT 1`

	row := r.db.QueryRowContext(ctx, query, string(t))
	return scanSnapshot(row)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSnapshot(row rowScanner) (Snapshot, error) {
	var s Snapshot
	var dataType string
	err := row.Scan(&s.RunID, &s.TakenAt, &dataType, &s.Overall,
		&s.Completeness, &s.Consistency, &s.Validity, &s.Uniqueness, &s.Timeliness, &s.Accuracy,
		&s.Records, &s.Issues)
	if err != nil {
		return Snapshot{}, err
	}
	s.DataType = models.DataType(dataType)
	return s, nil
}
