package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"go-crowd-monitor/pkg/models"
)

// Fixed-width so that text ordering matches time ordering
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		input_location TEXT NOT NULL,
		output_location TEXT NOT NULL,
		status TEXT NOT NULL,
		message TEXT NOT NULL,
		code INTEGER NOT NULL DEFAULT 0,
		crowd_estimates TEXT,
		timestamp TEXT NOT NULL,
		processing_time_sec REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_analyses_timestamp ON analyses(timestamp);
`

// SQLiteAnalysisRepository keeps analysis history in a sqlite database
type SQLiteAnalysisRepository struct {
	db *sql.DB
}

// NewSQLiteAnalysisRepository opens (creating if needed) the database at path
func NewSQLiteAnalysisRepository(path string) (*SQLiteAnalysisRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases consistent
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteAnalysisRepository{db: db}, nil
}

// Save inserts a record, replacing any record with the same id
func (r *SQLiteAnalysisRepository) Save(ctx context.Context, record *models.AnalysisRecord) error {
	var estimates sql.NullString
	if record.CrowdEstimates != nil {
		data, err := json.Marshal(record.CrowdEstimates)
		if err != nil {
			return fmt.Errorf("failed to encode crowd estimates: %w", err)
		}
		estimates = sql.NullString{String: string(data), Valid: true}
	}

	query := `
		INSERT OR REPLACE INTO analyses (
			id, input_location, output_location, status, message, code,
			crowd_estimates, timestamp, processing_time_sec
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.InputLocation,
		record.OutputLocation,
		record.Status,
		record.Message,
		record.Code,
		estimates,
		record.Timestamp.UTC().Format(timestampLayout),
		record.ProcessingTimeSec,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", record.ID, err)
	}
	return nil
}

// Get retrieves a record by id
func (r *SQLiteAnalysisRepository) Get(ctx context.Context, id string) (*models.AnalysisRecord, error) {
	query := `
		SELECT id, input_location, output_location, status, message, code,
			   crowd_estimates, timestamp, processing_time_sec
		FROM analyses
		WHERE id = ?
	`
	record, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}
	return record, nil
}

// List returns up to limit records, newest first. A non-positive limit returns all.
func (r *SQLiteAnalysisRepository) List(ctx context.Context, limit int) ([]*models.AnalysisRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `
		SELECT id, input_location, output_location, status, message, code,
			   crowd_estimates, timestamp, processing_time_sec
		FROM analyses
		ORDER BY timestamp DESC, rowid DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	records := make([]*models.AnalysisRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Close closes the database
func (r *SQLiteAnalysisRepository) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.AnalysisRecord, error) {
	var (
		record    models.AnalysisRecord
		estimates sql.NullString
		timestamp string
	)
	err := row.Scan(
		&record.ID,
		&record.InputLocation,
		&record.OutputLocation,
		&record.Status,
		&record.Message,
		&record.Code,
		&estimates,
		&timestamp,
		&record.ProcessingTimeSec,
	)
	if err != nil {
		return nil, err
	}

	if estimates.Valid {
		if err := json.Unmarshal([]byte(estimates.String), &record.CrowdEstimates); err != nil {
			return nil, fmt.Errorf("invalid crowd estimates: %w", err)
		}
	}
	if record.Timestamp, err = time.Parse(timestampLayout, timestamp); err != nil {
		return nil, fmt.Errorf("invalid timestamp %q: %w", timestamp, err)
	}
	return &record, nil
}
