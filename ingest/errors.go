// backend/ingest/errors.go
package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSourceAbsent reports that a (taxi type, month) source file does not exist
// upstream. The TLC publishes files with a lag and never backfills some fleet
// variants, so absence is an expected outcome: callers skip the combination and
// keep going.
var ErrSourceAbsent = errors.New("source file absent")

// MalformedDateError reports an unparseable ingestion window bound. It is fatal
// and surfaced before any fetch is attempted.
type MalformedDateError struct {
	Field string // "start_date" or "end_date"
	Value string
	Err   error
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("malformed %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *MalformedDateError) Unwrap() error { return e.Err }

// UnrecognizedSchemaError reports a fetched batch whose header matches none of
// the known pickup/dropoff column conventions. This means the TLC changed the
// published schema, not that the file is missing, so it must abort the run
// rather than be skipped: skipping would silently drop a whole month of data.
type UnrecognizedSchemaError struct {
	TaxiType string
	Columns  []string
}

func (e *UnrecognizedSchemaError) Error() string {
	return fmt.Sprintf("unrecognized trip schema for taxi type %q: no known pickup/dropoff columns in header [%s]",
		e.TaxiType, strings.Join(e.Columns, ", "))
}

// MalformedSourceError reports a source file that exists but cannot be decoded.
// Unlike absence this is a data-integrity failure and propagates.
type MalformedSourceError struct {
	URL string
	Err error
}

func (e *MalformedSourceError) Error() string {
	return fmt.Sprintf("malformed source file at %s: %v", e.URL, e.Err)
}

func (e *MalformedSourceError) Unwrap() error { return e.Err }
