// backend/ingest/normalize.go
package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/citystreams/tlcingest/backend/models"
)

// datetimeRule maps one known pickup/dropoff naming convention onto the raw
// row fields that hold its values.
type datetimeRule struct {
	pickupCol  string
	dropoffCol string
	pick       func(t rawTrip) (pickup, dropoff *string)
}

// The conventions are tried in this order and the first whose column pair is
// present in the header wins: generic FHV names, then yellow (tpep), then
// green (lpep).
var datetimeRules = []datetimeRule{
	{
		pickupCol:  "pickup_datetime",
		dropoffCol: "dropoff_datetime",
		pick: func(t rawTrip) (*string, *string) {
			return t.PickupDatetime, t.DropoffDatetime
		},
	},
	{
		pickupCol:  "tpep_pickup_datetime",
		dropoffCol: "tpep_dropoff_datetime",
		pick: func(t rawTrip) (*string, *string) {
			return t.TpepPickupDatetime, t.TpepDropoffDatetime
		},
	},
	{
		pickupCol:  "lpep_pickup_datetime",
		dropoffCol: "lpep_dropoff_datetime",
		pick: func(t rawTrip) (*string, *string) {
			return t.LpepPickupDatetime, t.LpepDropoffDatetime
		},
	},
}

// Timestamp layouts seen in published trip files.
var tripDatetimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Normalize maps a raw monthly batch onto the canonical trip schema and tags
// every row with the supplied taxi type. The taxi type is always the caller's
// label, even if the source carried its own fleet column. Canonical fields the
// source never had come out nil (NULL downstream), location columns included:
// their absence is tolerated, only a missing pickup/dropoff pair is an error.
// The input batch is left untouched; rows are built fresh.
func Normalize(batch *RawBatch, taxiType string) ([]models.TripRecord, error) {
	rule, ok := findDatetimeRule(batch.Columns)
	if !ok {
		return nil, &UnrecognizedSchemaError{TaxiType: taxiType, Columns: batch.Columns}
	}

	hasPULocation := hasColumn(batch.Columns, "PULocationID")
	hasDOLocation := hasColumn(batch.Columns, "DOLocationID")
	hasFare := hasColumn(batch.Columns, "fare_amount")
	hasPayment := hasColumn(batch.Columns, "payment_type")

	records := make([]models.TripRecord, 0, len(batch.trips))
	for _, trip := range batch.trips {
		pickup, dropoff := rule.pick(trip)

		record := models.TripRecord{
			PickupDatetime:  parseTripDatetime(pickup),
			DropoffDatetime: parseTripDatetime(dropoff),
			TaxiType:        taxiType,
		}
		if hasPULocation {
			record.PickupLocationID = parseLocationID(trip.PULocationID)
		}
		if hasDOLocation {
			record.DropoffLocationID = parseLocationID(trip.DOLocationID)
		}
		if hasFare {
			record.FareAmount = parseFare(trip.FareAmount)
		}
		if hasPayment {
			record.PaymentType = parsePaymentType(trip.PaymentType)
		}
		records = append(records, record)
	}
	return records, nil
}

// findDatetimeRule returns the first convention whose pickup and dropoff
// columns are both present in the header.
func findDatetimeRule(columns []string) (datetimeRule, bool) {
	for _, rule := range datetimeRules {
		if hasColumn(columns, rule.pickupCol) && hasColumn(columns, rule.dropoffCol) {
			return rule, true
		}
	}
	return datetimeRule{}, false
}

func hasColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}

// Cell-level parse failures become NULL rather than errors: schema
// recognition, not cell text, is the integrity boundary for a batch.

func parseTripDatetime(value *string) *time.Time {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	for _, layout := range tripDatetimeLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(*value)); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func parseLocationID(value *string) *int64 {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	// Older exports wrote location IDs as floats ("161.0").
	f, err := strconv.ParseFloat(strings.TrimSpace(*value), 64)
	if err != nil {
		return nil
	}
	id := int64(f)
	return &id
}

func parseFare(value *string) *float64 {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*value), 64)
	if err != nil {
		return nil
	}
	return &f
}

func parsePaymentType(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}
