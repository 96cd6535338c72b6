// backend/database/trip_store.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/citystreams/tlcingest/backend/models"
)

// SaveTrips appends a batch of canonical trip rows to the trips table, tagged
// with the run that produced them. The table is append-only: re-ingesting a
// window adds rows under a new run id rather than rewriting history.
func SaveTrips(trips []models.TripRecord, runID string) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	if len(trips) == 0 {
		log.Println("No trips provided to save.")
		return nil
	}

	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for trips: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO trips (
			pickup_datetime, dropoff_datetime,
			pickup_location_id, dropoff_location_id,
			fare_amount, payment_type, taxi_type,
			ingest_run_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare trip insert statement: %w", err)
	}
	defer stmt.Close()

	for i, trip := range trips {
		_, err := stmt.Exec(
			nullTime(trip.PickupDatetime), nullTime(trip.DropoffDatetime),
			nullInt64(trip.PickupLocationID), nullInt64(trip.DropoffLocationID),
			nullFloat64(trip.FareAmount), nullString(trip.PaymentType), trip.TaxiType,
			runID,
		)
		if err != nil {
			return fmt.Errorf("failed to execute trip insert for row %d (taxi_type '%s'): %w", i, trip.TaxiType, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for trips: %w", err)
	}

	log.Printf("Successfully saved %d trips for run %s.\n", len(trips), runID)
	return nil
}

// Nullable conversion helpers: nil pointers become SQL NULLs.

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullFloat64(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
