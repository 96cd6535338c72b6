// backend/services/ingest_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/citystreams/tlcingest/backend/database"
	"github.com/citystreams/tlcingest/backend/ingest"
	"github.com/citystreams/tlcingest/backend/models"
	"github.com/citystreams/tlcingest/backend/utils"
)

// RunIngestion executes the fetch-and-filter loop for one window: for every
// configured taxi type (outer, caller order) and every month the window covers
// (inner, ascending), it fetches the monthly source file, normalizes it onto
// the canonical schema, and keeps rows with start <= pickup < end. That loop
// order is part of the contract - it fixes the row order of the result.
//
// A source the fetcher reports absent contributes nothing and the run goes on;
// an unrecognized schema or a corrupt file aborts the run so the gap is
// visible instead of silently missing from the output. Fetches are issued one
// at a time. An empty result is still a schema-complete table, never nil.
func RunIngestion(window models.DateWindow, taxiTypes []string, fetcher ingest.Fetcher) (*models.TripTable, error) {
	if len(taxiTypes) == 0 {
		taxiTypes = utils.DefaultTaxiTypes()
	}

	months := ingest.MonthStarts(window)
	table := models.NewTripTable()
	if len(months) == 0 {
		log.Printf("Service: Window [%s, %s) covers no months; returning empty table.\n",
			window.Start.Format("2006-01-02"), window.End.Format("2006-01-02"))
		return table, nil
	}

	log.Printf("Service: Ingesting %d month(s) x %d taxi type(s) for window [%s, %s).\n",
		len(months), len(taxiTypes),
		window.Start.Format("2006-01-02"), window.End.Format("2006-01-02"))

	for _, taxiType := range taxiTypes {
		for _, month := range months {
			batch, err := fetcher.FetchMonth(taxiType, month)
			if err != nil {
				if errors.Is(err, ingest.ErrSourceAbsent) {
					log.Printf("Service: No %s file for %s; skipping. (%v)\n",
						taxiType, month.Format("2006-01"), err)
					continue
				}
				return nil, fmt.Errorf("fetching %s %s: %w", taxiType, month.Format("2006-01"), err)
			}

			records, err := ingest.Normalize(batch, taxiType)
			if err != nil {
				return nil, fmt.Errorf("normalizing %s %s: %w", taxiType, month.Format("2006-01"), err)
			}

			kept := filterToWindow(records, window)
			log.Printf("Service: %s %s: %d rows fetched, %d within window.\n",
				taxiType, month.Format("2006-01"), len(records), len(kept))
			if len(kept) == 0 {
				continue
			}
			table.Append(kept)
		}
	}

	log.Printf("Service: Ingestion produced %d rows total.\n", table.RowCount())
	return table, nil
}

// filterToWindow keeps rows whose pickup falls in the half-open window, using
// the original window bounds, not the month-aligned ones. Rows with a NULL
// pickup cannot be placed in any window and are dropped.
func filterToWindow(records []models.TripRecord, window models.DateWindow) []models.TripRecord {
	var kept []models.TripRecord
	for _, r := range records {
		if r.PickupDatetime == nil {
			continue
		}
		p := *r.PickupDatetime
		if !p.Before(window.Start) && p.Before(window.End) {
			kept = append(kept, r)
		}
	}
	return kept
}

// IngestAndStore parses the requested window, runs the ingestion, appends the
// resulting rows to the trips table, and records the run in ingest_runs. The
// failure path records the run too, so aborted windows show up in history.
func IngestAndStore(startStr, endStr string, taxiTypes []string, fetcher ingest.Fetcher) (*models.IngestRun, error) {
	window, err := ingest.ParseWindow(startStr, endStr)
	if err != nil {
		return nil, err
	}

	run := &models.IngestRun{
		RunID:       uuid.NewString(),
		WindowStart: window.Start,
		WindowEnd:   window.End,
		TaxiTypes:   strings.Join(taxiTypes, ","),
		Status:      models.RunStatusSucceeded,
		StartedAt:   time.Now().UTC(),
	}
	if len(taxiTypes) == 0 {
		run.TaxiTypes = strings.Join(utils.DefaultTaxiTypes(), ",")
	}
	log.Printf("Service: Starting ingest run %s for [%s, %s) taxi types [%s].\n",
		run.RunID, startStr, endStr, run.TaxiTypes)

	table, runErr := RunIngestion(window, taxiTypes, fetcher)
	if runErr != nil {
		msg := runErr.Error()
		run.Status = models.RunStatusFailed
		run.ErrorMessage = &msg
		finishRun(run)
		return run, runErr
	}

	run.RowCount = table.RowCount()
	if err := database.SaveTrips(table.Rows, run.RunID); err != nil {
		msg := err.Error()
		run.Status = models.RunStatusFailed
		run.ErrorMessage = &msg
		finishRun(run)
		return run, fmt.Errorf("storing ingested trips: %w", err)
	}

	finishRun(run)
	log.Printf("Service: Ingest run %s finished: %d rows appended.\n", run.RunID, run.RowCount)
	return run, nil
}

// finishRun stamps the run and writes it to the run log. Failure to write the
// log is reported but does not fail the run itself.
func finishRun(run *models.IngestRun) {
	now := time.Now().UTC()
	run.FinishedAt = &now
	if err := database.RecordIngestRun(run); err != nil {
		log.Printf("ERROR Service: Failed to record ingest run %s: %v\n", run.RunID, err)
	}
}
