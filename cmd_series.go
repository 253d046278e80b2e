package main

import (
	"fmt"

	"github.com/andareed/siftly-dash/logging"
	"github.com/andareed/siftly-dash/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) toggleCursorSeries() tea.Cmd {
	name := m.cursorSeries()
	if name == "" {
		return nil
	}
	m.sess.Series().Toggle(name)
	logging.Debugf("series %q active=%v", name, m.sess.Series().IsActive(name))
	return nil
}

// bulkSeries runs one of the all-on / all-off / invert / largest actions.
func (m *model) bulkSeries(action string) tea.Cmd {
	sm := m.sess.Series()
	if sm == nil {
		return nil
	}
	switch action {
	case "all":
		sm.SetActiveAll(true)
	case "none":
		sm.SetActiveAll(false)
	case "invert":
		sm.InvertAll()
	case "largest":
		name := sm.ShowLargest()
		if name == "" {
			return m.startNotice("No finite values in any series", "warn", noticeDuration)
		}
		m.fitView()
		return m.startNotice("Showing only "+name, "info", noticeDuration)
	}
	logging.Infof("series bulk %s: %d active", action, len(sm.Active()))
	return nil
}

func (m *model) setScale(mode viewport.ScaleMode) tea.Cmd {
	if m.sess.Scale() == mode {
		return nil
	}
	m.sess.SetScale(mode)
	m.fitView()
	return m.startNotice("Scale: "+mode.String(), "info", noticeDuration)
}

// toggleCursorDownsample pins the opposite of the effective setting on the
// series under the cursor.
func (m *model) toggleCursorDownsample() tea.Cmd {
	name := m.cursorSeries()
	if name == "" {
		return nil
	}
	sm := m.sess.Series()
	on := !sm.Downsample(name)
	sm.SetDownsample(name, on)
	return m.startNotice(fmt.Sprintf("Downsampling %s: %s", name, onOff(on)), "info", noticeDuration)
}

// toggleDefaultDownsample flips the default; series with their own setting
// keep it. With all set, every override is dropped as well.
func (m *model) toggleDefaultDownsample(all bool) tea.Cmd {
	sm := m.sess.Series()
	if sm == nil {
		return nil
	}
	on := !sm.DownsampleDefault()
	if all {
		sm.ApplyDownsampleAll(on)
		return m.startNotice("Downsampling for all series: "+onOff(on), "info", noticeDuration)
	}
	sm.SetDownsampleDefault(on)
	return m.startNotice("Default downsampling: "+onOff(on), "info", noticeDuration)
}

func (m *model) toggleMarkers() tea.Cmd {
	m.sess.Markers = !m.sess.Markers
	return m.startNotice("Point markers: "+onOff(m.sess.Markers), "info", noticeDuration)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
