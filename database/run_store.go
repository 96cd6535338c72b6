// backend/database/run_store.go
package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/citystreams/tlcingest/backend/models"
)

// RecordIngestRun inserts one row into the ingest_runs log. Each run is a new
// row; runs are never updated after the fact.
func RecordIngestRun(run *models.IngestRun) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	var errMsg sql.NullString
	if run.ErrorMessage != nil {
		errMsg = sql.NullString{String: *run.ErrorMessage, Valid: true}
	}
	var finished sql.NullTime
	if run.FinishedAt != nil {
		finished = sql.NullTime{Time: *run.FinishedAt, Valid: true}
	}

	_, err := DB.Exec(`
		INSERT INTO ingest_runs (
			run_id, window_start, window_end, taxi_types,
			row_count, status, error_message, started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.RunID, run.WindowStart, run.WindowEnd, run.TaxiTypes,
		run.RowCount, run.Status, errMsg, run.StartedAt, finished,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ingest run %s: %w", run.RunID, err)
	}

	log.Printf("Recorded ingest run %s (status: %s, rows: %d).\n", run.RunID, run.Status, run.RowCount)
	return nil
}

// GetRecentIngestRuns returns the most recent runs, newest first.
func GetRecentIngestRuns(limit int) ([]models.IngestRun, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := DB.Query(`
		SELECT id, run_id, window_start, window_end, taxi_types,
		       row_count, status, error_message, started_at, finished_at
		FROM ingest_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingest runs: %w", err)
	}
	defer rows.Close()

	var runs []models.IngestRun
	for rows.Next() {
		var run models.IngestRun
		var errMsg sql.NullString
		var finished sql.NullTime
		err := rows.Scan(
			&run.ID, &run.RunID, &run.WindowStart, &run.WindowEnd, &run.TaxiTypes,
			&run.RowCount, &run.Status, &errMsg, &run.StartedAt, &finished,
		)
		if err != nil {
			log.Printf("ERROR: Failed to scan ingest run row: %v", err)
			continue
		}
		if errMsg.Valid {
			run.ErrorMessage = &errMsg.String
		}
		if finished.Valid {
			run.FinishedAt = &finished.Time
		}
		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ingest run rows: %w", err)
	}
	log.Printf("Retrieved %d ingest runs.\n", len(runs))
	return runs, nil
}
