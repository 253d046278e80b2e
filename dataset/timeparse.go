package dataset

import (
	"strings"
	"time"
)

// TimeCandidates are the header names recognised as the time column, in
// priority order. Matching is exact and case-sensitive.
var TimeCandidates = []string{
	"Date UTC", "UTC", "Timestamp", "DateTime", "Datetime", "Date_Time",
	"Date", "Time", "time", "date", "datetime",
}

// Fractional seconds after the seconds field parse without being in the
// layout, so "15:04:05" also accepts "15:04:05.123".
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006.01.02 15:04:05",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"02-Jan-2006 15:04:05",
	"Mon Jan 02 15:04:05 MST 2006",
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// ParseTimestamp tries every known layout. Values without an offset are
// taken as UTC.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// findTimeColumn returns the index of the time column, every header that
// matched a candidate, and whether any matched at all.
func findTimeColumn(names []string, override string) (int, []string, bool) {
	var found []string
	for _, cand := range TimeCandidates {
		for _, n := range names {
			if n == cand {
				found = append(found, n)
			}
		}
	}
	if override != "" {
		for i, n := range names {
			if n == override {
				return i, found, true
			}
		}
	}
	if len(found) == 0 {
		return 0, nil, false
	}
	for i, n := range names {
		if n == found[0] {
			return i, found, true
		}
	}
	return 0, found, false
}
