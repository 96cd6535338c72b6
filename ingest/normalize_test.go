// backend/ingest/normalize_test.go
package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCSV(t *testing.T, data string) *RawBatch {
	t.Helper()
	batch, err := ParseTripCSV(strings.NewReader(data))
	require.NoError(t, err)
	return batch
}

const yellowCSV = `tpep_pickup_datetime,tpep_dropoff_datetime,PULocationID,DOLocationID,fare_amount,payment_type,extra_column
2023-01-05 10:00:00,2023-01-05 10:30:00,161,237,18.50,1,ignored
2023-01-06 08:15:00,2023-01-06 08:45:00,43,100,12.00,2,ignored
`

const greenCSV = `lpep_pickup_datetime,lpep_dropoff_datetime,PULocationID,DOLocationID,fare_amount,payment_type
2023-01-05 10:00:00,2023-01-05 10:30:00,161,237,18.50,1
2023-01-06 08:15:00,2023-01-06 08:45:00,43,100,12.00,2
`

const fhvCSV = `pickup_datetime,dropoff_datetime,PULocationID,DOLocationID,fare_amount,payment_type
2023-01-05 10:00:00,2023-01-05 10:30:00,161,237,18.50,1
2023-01-06 08:15:00,2023-01-06 08:45:00,43,100,12.00,2
`

func TestNormalizeAllNamingConventionsAgree(t *testing.T) {
	yellow, err := Normalize(parseCSV(t, yellowCSV), "test")
	require.NoError(t, err)
	green, err := Normalize(parseCSV(t, greenCSV), "test")
	require.NoError(t, err)
	fhv, err := Normalize(parseCSV(t, fhvCSV), "test")
	require.NoError(t, err)

	// Same canonical rows whichever vintage the file used.
	assert.Equal(t, yellow, green)
	assert.Equal(t, yellow, fhv)
	require.Len(t, yellow, 2)

	first := yellow[0]
	require.NotNil(t, first.PickupDatetime)
	assert.Equal(t, "2023-01-05 10:00:00", first.PickupDatetime.Format("2006-01-02 15:04:05"))
	require.NotNil(t, first.DropoffDatetime)
	assert.Equal(t, "2023-01-05 10:30:00", first.DropoffDatetime.Format("2006-01-02 15:04:05"))
	require.NotNil(t, first.PickupLocationID)
	assert.Equal(t, int64(161), *first.PickupLocationID)
	require.NotNil(t, first.DropoffLocationID)
	assert.Equal(t, int64(237), *first.DropoffLocationID)
	require.NotNil(t, first.FareAmount)
	assert.Equal(t, 18.50, *first.FareAmount)
	require.NotNil(t, first.PaymentType)
	assert.Equal(t, "1", *first.PaymentType)
}

func TestNormalizeMissingOptionalColumnsBecomeNull(t *testing.T) {
	// Early FHV vintage: datetimes only.
	data := "pickup_datetime,dropoff_datetime\n2023-01-05 10:00:00,2023-01-05 10:30:00\n"
	records, err := Normalize(parseCSV(t, data), "fhv")
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Nil(t, r.PickupLocationID)
	assert.Nil(t, r.DropoffLocationID)
	assert.Nil(t, r.FareAmount)
	assert.Nil(t, r.PaymentType)
	require.NotNil(t, r.PickupDatetime)
	assert.Equal(t, "fhv", r.TaxiType)
}

func TestNormalizeUnrecognizedSchema(t *testing.T) {
	data := "ride_start,ride_end,cost\n2023-01-05 10:00:00,2023-01-05 10:30:00,9.99\n"
	_, err := Normalize(parseCSV(t, data), "yellow")
	require.Error(t, err)

	var schemaErr *UnrecognizedSchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "yellow", schemaErr.TaxiType)
	assert.Contains(t, schemaErr.Columns, "ride_start")
	// Absence masking must never hide this class of failure.
	assert.False(t, errors.Is(err, ErrSourceAbsent))
}

func TestNormalizeGenericNamesWinOverVariants(t *testing.T) {
	// Both generic and tpep pairs present: generic is tried first.
	data := "pickup_datetime,dropoff_datetime,tpep_pickup_datetime,tpep_dropoff_datetime\n" +
		"2023-01-05 10:00:00,2023-01-05 10:30:00,2020-06-06 06:06:06,2020-06-06 07:07:07\n"
	records, err := Normalize(parseCSV(t, data), "yellow")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].PickupDatetime)
	assert.Equal(t, "2023-01-05 10:00:00", records[0].PickupDatetime.Format("2006-01-02 15:04:05"))
}

func TestNormalizeTaxiTypeIsCallersLabel(t *testing.T) {
	records, err := Normalize(parseCSV(t, yellowCSV), "green")
	require.NoError(t, err)
	for _, r := range records {
		assert.Equal(t, "green", r.TaxiType)
	}
}

func TestNormalizeUnparsableCellsBecomeNull(t *testing.T) {
	data := "tpep_pickup_datetime,tpep_dropoff_datetime,PULocationID,DOLocationID,fare_amount,payment_type\n" +
		"garbage,2023-01-05 10:30:00,not-a-number,237,free,1\n"
	records, err := Normalize(parseCSV(t, data), "yellow")
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Nil(t, r.PickupDatetime)
	require.NotNil(t, r.DropoffDatetime)
	assert.Nil(t, r.PickupLocationID)
	require.NotNil(t, r.DropoffLocationID)
	assert.Nil(t, r.FareAmount)
	require.NotNil(t, r.PaymentType)
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	batch := parseCSV(t, yellowCSV)
	columnsBefore := append([]string(nil), batch.Columns...)
	rowsBefore := batch.RowCount()

	_, err := Normalize(batch, "yellow")
	require.NoError(t, err)
	_, err = Normalize(batch, "green")
	require.NoError(t, err)

	assert.Equal(t, columnsBefore, batch.Columns)
	assert.Equal(t, rowsBefore, batch.RowCount())
}

func TestNormalizePreservesRowCountAndOrder(t *testing.T) {
	records, err := Normalize(parseCSV(t, greenCSV), "green")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].PickupDatetime.Before(*records[1].PickupDatetime))
}
