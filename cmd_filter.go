package main

import (
	"github.com/andareed/siftly-dash/logging"
)

// setSeriesFilter narrows the side panel list to series whose name
// contains pattern. The cursor follows the series it was on when that
// series is still listed.
func (m *model) setSeriesFilter(pattern string) {
	logging.Infof("Setting series filter to: %q", pattern)
	current := m.cursorSeries()
	m.data.filter = pattern
	m.applyFilter()
	for i, name := range m.data.listed {
		if name == current {
			m.data.listCursor = i
			return
		}
	}
	m.data.listCursor = 0
}

// applyFilter rebuilds the listed series from the session.
func (m *model) applyFilter() {
	if m.sess.Series() == nil {
		m.data.listed = nil
		m.data.listCursor = 0
		return
	}
	m.data.listed = m.sess.Series().Match(m.data.filter)
	m.data.listCursor = clamp(m.data.listCursor, 0, max(0, len(m.data.listed)-1))
}

func (m *model) cursorSeries() string {
	if m.data.listCursor < 0 || m.data.listCursor >= len(m.data.listed) {
		return ""
	}
	return m.data.listed[m.data.listCursor]
}

func (m *model) moveListCursor(delta int) {
	if len(m.data.listed) == 0 {
		return
	}
	m.data.listCursor = clamp(m.data.listCursor+delta, 0, len(m.data.listed)-1)
}
