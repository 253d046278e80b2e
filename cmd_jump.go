package main

import (
	"fmt"

	"github.com/andareed/siftly-dash/annotate"
	"github.com/andareed/siftly-dash/logging"
	"github.com/andareed/siftly-dash/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const panFraction = 0.1

// fitView resets the view to the auto-fit box of the active series, or
// to the full time range when nothing is active.
func (m *model) fitView() {
	if r, ok := m.sess.Fit(); ok {
		m.data.view = r
		m.data.hasView = true
	} else if b, ok := m.sess.Bounds(); ok {
		m.data.view = viewport.Rect{X: b, Y: viewport.Range{Min: 0, Max: 1}}
		m.data.hasView = true
	}
	if m.data.hasView && !m.data.view.X.Contains(m.data.crosshair) {
		m.data.crosshair = m.data.view.Center().X
	}
	logging.Debugf("fit view x=%+v y=%+v", m.data.view.X, m.data.view.Y)
}

// zoom scales the view about the crosshair on X and the centre on Y.
func (m *model) zoom(factor float64, mask viewport.AxisMask) {
	if !m.data.hasView {
		return
	}
	anchor := m.data.view.Center()
	if m.data.view.X.Contains(m.data.crosshair) {
		anchor.X = m.data.crosshair
	}
	m.data.view = viewport.Zoom(m.data.view, anchor, factor, mask)
}

func (m *model) zoomAt(sec float64, factor float64) {
	if !m.data.hasView {
		return
	}
	anchor := viewport.Point{X: sec, Y: m.data.view.Center().Y}
	m.data.view = viewport.Zoom(m.data.view, anchor, factor, viewport.AxisX)
}

func (m *model) pan(dir float64) {
	if !m.data.hasView {
		return
	}
	m.data.view = viewport.Pan(m.data.view, dir*panFraction, viewport.AxisX)
	if !m.data.view.X.Contains(m.data.crosshair) {
		m.data.crosshair = m.data.view.Center().X
	}
}

// stepCrosshair moves the crosshair to the neighbouring sample and keeps
// it on screen.
func (m *model) stepCrosshair(delta int) {
	ds := m.sess.Dataset()
	if ds == nil || ds.Len() == 0 {
		return
	}
	i := m.sess.NearestIndex(m.data.crosshair) + delta
	i = clamp(i, 0, ds.Len()-1)
	m.data.crosshair = ds.TimeSec[i]
	x := m.data.view.X
	if !x.Contains(m.data.crosshair) {
		shift := m.data.crosshair - midpoint(x)
		m.data.view.X = viewport.Range{Min: x.Min + shift, Max: x.Max + shift}
	}
}

// setWindow replaces the X range and refits Y to what is now visible.
func (m *model) setWindow(x viewport.Range) {
	y := m.data.view.Y
	if r, ok := m.sess.Fit(); ok {
		y = r.Y
	}
	m.data.view = viewport.Rect{X: x, Y: y}
	m.data.hasView = true
	m.data.crosshair = midpoint(x)
}

// plotClick is a click on the chart at sec: it moves the crosshair and
// feeds the highlight gesture when armed.
func (m *model) plotClick(sec float64) tea.Cmd {
	m.data.crosshair = sec
	if m.sess.Annotations().Highlight.State() == annotate.Idle {
		return nil
	}
	span, done := m.sess.HighlightClick(sec)
	if !done {
		return m.startNotice("Highlight: click the second edge", "info", noticeDuration)
	}
	m.data.pendingSpan = span
	m.openCommand(CmdRegion, "")
	return nil
}

func (m *model) toggleHighlight() tea.Cmd {
	if m.sess.Annotations().Highlight.Toggle() {
		return m.startNotice("Highlight: click the first edge (enter or mouse)", "info", noticeDuration)
	}
	return m.startNotice("Highlight off", "info", noticeDuration)
}

// jumpToPanelEntry centres the view on the bookmark or event under the
// panel cursor.
func (m *model) jumpToPanelEntry() tea.Cmd {
	var (
		win viewport.Range
		ok  bool
	)
	switch m.ui.panel {
	case panelBookmarks:
		win, ok = m.sess.JumpToBookmark(m.ui.panelCursor)
	case panelEvents:
		win, ok = m.jumpToSortedEvent(m.ui.panelCursor)
	default:
		return nil
	}
	if !ok {
		return m.startNotice(fmt.Sprintf("Entry %d out of range", m.ui.panelCursor+1), "warn", noticeDuration)
	}
	m.setWindow(win)
	return nil
}

// jumpToSortedEvent maps a row of the time-sorted events panel back to the
// event log.
func (m *model) jumpToSortedEvent(row int) (viewport.Range, bool) {
	idx, ok := m.eventLogIndex(row)
	if !ok {
		return viewport.Range{}, false
	}
	return m.sess.JumpToEvent(idx)
}

func (m *model) eventLogIndex(row int) (int, bool) {
	sorted := m.sess.Annotations().EventsByTime()
	if row < 0 || row >= len(sorted) {
		return 0, false
	}
	for i, h := range m.sess.Annotations().Events() {
		if h.ID == sorted[row].ID {
			return i, true
		}
	}
	return 0, false
}

func (m *model) deletePanelEntry() tea.Cmd {
	notes := m.sess.Annotations()
	switch m.ui.panel {
	case panelBookmarks:
		if !notes.RemoveBookmark(m.ui.panelCursor) {
			return nil
		}
	case panelEvents:
		idx, ok := m.eventLogIndex(m.ui.panelCursor)
		if !ok || !notes.RemoveEvent(idx) {
			return nil
		}
	default:
		return nil
	}
	m.ui.panelCursor = clamp(m.ui.panelCursor, 0, max(0, m.panelLen()-1))
	return m.startNotice("Entry removed", "info", noticeDuration)
}

func (m *model) panelLen() int {
	switch m.ui.panel {
	case panelBookmarks:
		return len(m.sess.Annotations().Bookmarks())
	case panelEvents:
		return len(m.sess.Annotations().Events())
	case panelSeries:
		return len(m.data.listed)
	default:
		return 0
	}
}

func midpoint(r viewport.Range) float64 { return (r.Min + r.Max) / 2 }
