// backend/handlers/runs_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/citystreams/tlcingest/backend/database"
	"github.com/citystreams/tlcingest/backend/models"
)

// ListIngestRunsHandler returns recent ingestion runs, newest first.
// Expects GET to /api/runs?limit=20
func ListIngestRunsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid 'limit' query parameter: must be a positive integer")
			return
		}
		limit = parsed
	}

	runs, err := database.GetRecentIngestRuns(limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to fetch ingest runs: %v", err))
		return
	}

	if runs == nil { // Ensure we always return an array for JSON, even if empty
		runs = []models.IngestRun{}
	}
	respondWithJSON(w, http.StatusOK, runs)
}
