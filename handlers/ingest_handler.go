// backend/handlers/ingest_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/citystreams/tlcingest/backend/config"
	"github.com/citystreams/tlcingest/backend/ingest"
	"github.com/citystreams/tlcingest/backend/models"
	"github.com/citystreams/tlcingest/backend/services"
	"github.com/citystreams/tlcingest/backend/utils"
)

// Helper to respond with JSON
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshalling JSON response: %v", err)
		http.Error(w, `{"error":"Failed to marshal JSON response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper to respond with an error
func respondWithError(w http.ResponseWriter, code int, message string) {
	log.Printf("API Error %d: %s", code, message)
	respondWithJSON(w, code, map[string]string{"error": message})
}

// ingestAndStore is swappable in tests.
var ingestAndStore = services.IngestAndStore

// RunTripIngestionHandler triggers an ingestion run.
// Expects POST to /api/admin/ingest-trips?start=YYYY-MM-DD&end=YYYY-MM-DD&taxi_types=yellow,green
// taxi_types is optional; the configured default list is used when omitted.
func RunTripIngestionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" {
		respondWithError(w, http.StatusBadRequest, "Missing 'start' query parameter (expected YYYY-MM-DD)")
		return
	}
	if end == "" {
		respondWithError(w, http.StatusBadRequest, "Missing 'end' query parameter (expected YYYY-MM-DD)")
		return
	}

	var taxiTypes []string
	if raw := r.URL.Query().Get("taxi_types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			normalized := utils.NormalizeTaxiType(t)
			if normalized == "" {
				continue
			}
			if !utils.IsKnownTaxiType(normalized) {
				log.Printf("WARN Handler: Taxi type %q is not a known TLC fleet; ingesting anyway.\n", normalized)
			}
			taxiTypes = append(taxiTypes, normalized)
		}
	}
	if len(taxiTypes) == 0 {
		taxiTypes = config.AppConfig.Ingest.DefaultTaxiTypes
	}

	fetcher := ingest.NewHTTPFetcher(config.AppConfig.TripSource.BaseURL, config.AppConfig.TripSource.FetchTimeout)
	run, err := ingestAndStore(start, end, taxiTypes, fetcher)
	if err != nil {
		var dateErr *ingest.MalformedDateError
		if errors.As(err, &dateErr) {
			respondWithError(w, http.StatusBadRequest, dateErr.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Ingestion run failed: %v", err))
		return
	}

	respondWithJSON(w, http.StatusOK, models.IngestRunResponse{
		RunID:       run.RunID,
		WindowStart: run.WindowStart.Format("2006-01-02"),
		WindowEnd:   run.WindowEnd.Format("2006-01-02"),
		TaxiTypes:   run.TaxiTypes,
		RowCount:    run.RowCount,
		Status:      run.Status,
	})
}

// SourceStatusHandler reports whether the TLC has published the trip file for
// a given taxi type and month yet.
// Expects GET to /api/admin/source-status?taxi_type=yellow&month=YYYY-MM
func SourceStatusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	taxiType := utils.NormalizeTaxiType(r.URL.Query().Get("taxi_type"))
	monthStr := r.URL.Query().Get("month")
	if taxiType == "" {
		respondWithError(w, http.StatusBadRequest, "Missing 'taxi_type' query parameter")
		return
	}
	if monthStr == "" {
		respondWithError(w, http.StatusBadRequest, "Missing 'month' query parameter (expected YYYY-MM)")
		return
	}
	month, err := time.Parse("2006-01", monthStr)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid 'month' format. Use YYYY-MM. Error: "+err.Error())
		return
	}

	listed, err := ingest.CheckSourceListed(config.AppConfig.TripSource.CatalogPageURL, taxiType, month)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to check source catalog: %v", err))
		return
	}

	respondWithJSON(w, http.StatusOK, models.SourceStatusResponse{
		TaxiType: taxiType,
		Month:    monthStr,
		Listed:   listed,
	})
}
