// backend/ingest/catalog_test.go
package ingest

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogHTML = `<html><body>
<div class="faq-answers">
  <ul>
    <li><a href="https://files.example.com/trip-data/yellow_tripdata_2023-01.csv">Yellow Taxi Trip Records (January 2023)</a></li>
    <li><a href="https://files.example.com/trip-data/green_tripdata_2023-01.csv">Green Taxi Trip Records (January 2023)</a></li>
    <li><a href="https://files.example.com/trip-data/yellow_tripdata_2022-12.csv">Yellow Taxi Trip Records (December 2022)</a></li>
  </ul>
</div>
</body></html>`

func TestCheckSourceListed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(catalogHTML))
	}))
	defer server.Close()

	jan2023 := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	listed, err := CheckSourceListed(server.URL, "yellow", jan2023)
	require.NoError(t, err)
	assert.True(t, listed)

	listed, err = CheckSourceListed(server.URL, "green", jan2023)
	require.NoError(t, err)
	assert.True(t, listed)

	// Not published yet.
	listed, err = CheckSourceListed(server.URL, "yellow", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, listed)

	// Fleet never linked on the page.
	listed, err = CheckSourceListed(server.URL, "fhvhv", jan2023)
	require.NoError(t, err)
	assert.False(t, listed)
}

func TestCheckSourceListedBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := CheckSourceListed(server.URL, "yellow", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status code 503")
}
