// backend/models/ingest.go
package models

import "time"

// Run status values stored in ingest_runs.status.
const (
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// IngestRun tracks one ingestion invocation: which window and taxi types it
// covered, how many rows it appended, and whether it completed.
type IngestRun struct {
	ID           int64      `db:"id" json:"id"`
	RunID        string     `db:"run_id" json:"run_id"` // UUID assigned at run start
	WindowStart  time.Time  `db:"window_start" json:"window_start"`
	WindowEnd    time.Time  `db:"window_end" json:"window_end"`
	TaxiTypes    string     `db:"taxi_types" json:"taxi_types"` // comma-joined, caller order
	RowCount     int        `db:"row_count" json:"row_count"`
	Status       string     `db:"status" json:"status"`
	ErrorMessage *string    `db:"error_message" json:"error_message,omitempty"`
	StartedAt    time.Time  `db:"started_at" json:"started_at"`
	FinishedAt   *time.Time `db:"finished_at" json:"finished_at,omitempty"`
}
