// backend/ingest/fetcher.go
package ingest

import (
	"fmt"
	"log"
	"net/http"
	"time"
)

// Fetcher retrieves the raw trip batch for one (taxi type, month) pair.
// Implementations report a missing source as an error wrapping ErrSourceAbsent
// so callers can skip it; any other error is a real failure and propagates.
type Fetcher interface {
	FetchMonth(taxiType string, month time.Time) (*RawBatch, error)
}

// SourceURL resolves the published location of a monthly trip file:
// {base}/{taxi_type}_tripdata_{yyyy}-{mm}.csv
func SourceURL(baseURL, taxiType string, month time.Time) string {
	return fmt.Sprintf("%s/%s_tripdata_%04d-%02d.csv", baseURL, taxiType, month.Year(), int(month.Month()))
}

// HTTPFetcher downloads monthly trip files from the TLC's public file host.
type HTTPFetcher struct {
	BaseURL string
	Client  http.Client
}

// NewHTTPFetcher creates a fetcher for the given base URL with a download
// timeout. A zero timeout falls back to 60s; the files run to hundreds of MB.
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPFetcher{
		BaseURL: baseURL,
		Client:  http.Client{Timeout: timeout},
	}
}

// FetchMonth downloads and decodes one monthly trip file.
//
// Outcome classification: a 403/404/410 response means the TLC has not
// published (or has withdrawn) the file, and transport failures get the same
// treatment so one flaky month cannot abort a whole run - both come back
// wrapping ErrSourceAbsent. A file that downloads but will not decode is
// different: that is corrupt data, reported as MalformedSourceError, and the
// caller is expected to stop.
func (f *HTTPFetcher) FetchMonth(taxiType string, month time.Time) (*RawBatch, error) {
	url := SourceURL(f.BaseURL, taxiType, month)
	log.Printf("Fetcher: Downloading trip file from %s\n", url)

	resp, err := f.Client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %v: %w", url, err, ErrSourceAbsent)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusForbidden, http.StatusNotFound, http.StatusGone:
		// CloudFront serves 403 for keys that do not exist.
		return nil, fmt.Errorf("fetch %s: status %d: %w", url, resp.StatusCode, ErrSourceAbsent)
	default:
		return nil, fmt.Errorf("fetch %s: unexpected status %d: %w", url, resp.StatusCode, ErrSourceAbsent)
	}

	batch, err := ParseTripCSV(resp.Body)
	if err != nil {
		return nil, &MalformedSourceError{URL: url, Err: err}
	}

	log.Printf("Fetcher: Downloaded %s (%d rows).\n", url, batch.RowCount())
	return batch, nil
}
