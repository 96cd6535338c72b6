// backend/ingest/parser_test.go
package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTripCSVHeaderOnly(t *testing.T) {
	batch, err := ParseTripCSV(strings.NewReader("tpep_pickup_datetime,tpep_dropoff_datetime\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, batch.RowCount())
	assert.Equal(t, []string{"tpep_pickup_datetime", "tpep_dropoff_datetime"}, batch.Columns)

	// A header-only file still normalizes to an empty, schema-complete batch.
	records, err := Normalize(batch, "yellow")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseTripCSVEmptyInput(t *testing.T) {
	_, err := ParseTripCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestParseTripCSVUnterminatedQuote(t *testing.T) {
	_, err := ParseTripCSV(strings.NewReader("tpep_pickup_datetime,tpep_dropoff_datetime\n\"broken"))
	require.Error(t, err)
}
