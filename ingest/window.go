// backend/ingest/window.go
package ingest

import (
	"time"

	"github.com/citystreams/tlcingest/backend/models"
)

// Accepted layouts for window bounds. The scheduler hands us plain dates, but
// full timestamps are accepted too so a window can cut into the middle of a day.
var windowDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseWindow parses the run's start and end dates into a DateWindow.
// Start is inclusive, end is exclusive. A failure to parse either bound is a
// MalformedDateError; no partial result is attempted after that.
func ParseWindow(startStr, endStr string) (models.DateWindow, error) {
	start, err := parseWindowDate(startStr)
	if err != nil {
		return models.DateWindow{}, &MalformedDateError{Field: "start_date", Value: startStr, Err: err}
	}
	end, err := parseWindowDate(endStr)
	if err != nil {
		return models.DateWindow{}, &MalformedDateError{Field: "end_date", Value: endStr, Err: err}
	}
	return models.DateWindow{Start: start, End: end}, nil
}

func parseWindowDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range windowDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// MonthStarts enumerates every first-of-month boundary covered by the window,
// in ascending order. Both bounds are normalized to midnight before the
// enumeration; the boundary range is half-open like the window itself, so
// [2023-03-01, 2023-04-01) yields exactly 2023-03-01. An inverted or empty
// window yields no months.
//
// Note: a window that starts mid-month only covers boundaries at or after its
// start, so the partial first month is deliberately excluded - its file is
// never fetched even though some of its rows would pass the row filter.
// Callers wanting that data must start the window on the 1st.
// Pure function, no side effects.
func MonthStarts(w models.DateWindow) []time.Time {
	start := normalizeDate(w.Start)
	end := normalizeDate(w.End)
	if !start.Before(end) {
		return nil
	}

	// First month boundary at or after start.
	m := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	if m.Before(start) {
		m = m.AddDate(0, 1, 0)
	}

	var months []time.Time
	for m.Before(end) {
		months = append(months, m)
		m = m.AddDate(0, 1, 0)
	}
	return months
}

// normalizeDate strips the time-of-day component, leaving midnight UTC.
func normalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
