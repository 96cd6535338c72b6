// backend/models/trip.go
package models

import "time"

// TripRecord is the canonical trip row every source vintage is normalized into.
// Pointer fields are nullable: a field the source file never carried stays nil
// and is written to the database as NULL, never as a zero value.
type TripRecord struct {
	PickupDatetime    *time.Time `db:"pickup_datetime"`
	DropoffDatetime   *time.Time `db:"dropoff_datetime"`
	PickupLocationID  *int64     `db:"pickup_location_id"`
	DropoffLocationID *int64     `db:"dropoff_location_id"`
	FareAmount        *float64   `db:"fare_amount"`
	PaymentType       *string    `db:"payment_type"`
	TaxiType          string     `db:"taxi_type"`
}

// CanonicalColumns is the fixed output schema, in order. Downstream SQL depends
// on every one of these being present, so even an empty ingestion result still
// declares them.
var CanonicalColumns = []string{
	"pickup_datetime",
	"dropoff_datetime",
	"pickup_location_id",
	"dropoff_location_id",
	"fare_amount",
	"payment_type",
	"taxi_type",
}

// TripTable is the combined result of one ingestion run: the surviving rows of
// every (taxi type, month) batch, concatenated in arrival order.
type TripTable struct {
	Rows []TripRecord
}

// NewTripTable returns an empty table that still carries the canonical schema.
func NewTripTable() *TripTable {
	return &TripTable{Rows: []TripRecord{}}
}

// Columns reports the canonical column set. It is the same for every table,
// empty or not.
func (t *TripTable) Columns() []string {
	return CanonicalColumns
}

// RowCount returns the number of rows in the table.
func (t *TripTable) RowCount() int {
	return len(t.Rows)
}

// Append adds rows to the end of the table, preserving their order.
func (t *TripTable) Append(rows []TripRecord) {
	t.Rows = append(t.Rows, rows...)
}

// DateWindow is a half-open date range: Start is inclusive, End is exclusive.
// Row filtering always uses these exact timestamps, not month-aligned copies.
type DateWindow struct {
	Start time.Time
	End   time.Time
}
