// backend/models/api_models.go
package models

// IngestRunResponse is the JSON reply for POST /api/admin/ingest-trips.
type IngestRunResponse struct {
	RunID       string `json:"run_id"`
	WindowStart string `json:"window_start"` // YYYY-MM-DD
	WindowEnd   string `json:"window_end"`   // YYYY-MM-DD
	TaxiTypes   string `json:"taxi_types"`
	RowCount    int    `json:"row_count"`
	Status      string `json:"status"`
}

// SourceStatusResponse is the JSON reply for GET /api/admin/source-status.
type SourceStatusResponse struct {
	TaxiType string `json:"taxi_type"`
	Month    string `json:"month"` // YYYY-MM
	Listed   bool   `json:"listed"`
}
