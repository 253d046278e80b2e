package main

import (
	"strings"
	"time"

	"github.com/andareed/siftly-dash/dataset"
)

const timeInputLayout = "2006-01-02 15:04:05"

// timeBounds is the loaded data's time extent in display time.
func (m *model) timeBounds() (time.Time, time.Time, bool) {
	ds := m.sess.Dataset()
	if ds == nil || ds.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	return ds.Time(0), ds.Time(ds.Len() - 1), true
}

// parseRangeInput reads a drawer field. The display zone is assumed; the
// data's own timestamp formats are accepted too, as UTC.
func parseRangeInput(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(timeInputLayout, raw, loc); err == nil {
		return t, true
	}
	return dataset.ParseTimestamp(raw)
}

func clampTimeToBounds(t time.Time, lo time.Time, hi time.Time) time.Time {
	if t.Before(lo) {
		return lo
	}
	if t.After(hi) {
		return hi
	}
	return t
}

// drawerWindow is the range the drawer opens with: the current view when
// there is one, else the whole file.
func (m *model) drawerWindow() (time.Time, time.Time) {
	lo, hi, _ := m.timeBounds()
	if !m.data.hasView {
		return lo, hi
	}
	loc := m.sess.Location()
	start := clampTimeToBounds(secToTime(m.data.view.X.Min).In(loc), lo, hi)
	end := clampTimeToBounds(secToTime(m.data.view.X.Max).In(loc), lo, hi)
	if !start.Before(end) {
		return lo, hi
	}
	return start, end
}
