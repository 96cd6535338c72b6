// backend/ingest/parser.go
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jszwec/csvutil"
)

// rawTrip captures every column any TLC trip-file vintage is known to carry.
// csvutil fills whichever tagged columns the file actually has and leaves the
// rest nil, so one struct covers yellow, green, and the generic FHV layout.
type rawTrip struct {
	PickupDatetime      *string `csv:"pickup_datetime"`
	DropoffDatetime     *string `csv:"dropoff_datetime"`
	TpepPickupDatetime  *string `csv:"tpep_pickup_datetime"`
	TpepDropoffDatetime *string `csv:"tpep_dropoff_datetime"`
	LpepPickupDatetime  *string `csv:"lpep_pickup_datetime"`
	LpepDropoffDatetime *string `csv:"lpep_dropoff_datetime"`
	PULocationID        *string `csv:"PULocationID"`
	DOLocationID        *string `csv:"DOLocationID"`
	FareAmount          *string `csv:"fare_amount"`
	PaymentType         *string `csv:"payment_type"`
}

// RawBatch is one month's trip file as fetched: the header as published, plus
// the decoded rows. The header is what schema detection runs against.
type RawBatch struct {
	Columns []string
	trips   []rawTrip
}

// RowCount returns the number of data rows in the batch.
func (b *RawBatch) RowCount() int {
	return len(b.trips)
}

// ParseTripCSV decodes a raw monthly trip file into a RawBatch. The first line
// must be a header; data columns outside the known set are ignored here and
// dropped for good during normalization.
func ParseTripCSV(r io.Reader) (*RawBatch, error) {
	csvReader := csv.NewReader(r)

	decoder, err := csvutil.NewDecoder(csvReader)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("trip file is empty: %w", err)
		}
		return nil, fmt.Errorf("failed to read trip file header: %w", err)
	}

	batch := &RawBatch{Columns: decoder.Header()}
	for {
		var trip rawTrip
		if err := decoder.Decode(&trip); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to decode trip row %d: %w", len(batch.trips)+1, err)
		}
		batch.trips = append(batch.trips, trip)
	}

	log.Printf("Parser: Decoded %d trip rows (%d columns in header).\n", len(batch.trips), len(batch.Columns))
	return batch, nil
}
