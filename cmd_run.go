package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andareed/siftly-dash/events"
	"github.com/andareed/siftly-dash/logging"
	tea "github.com/charmbracelet/bubbletea"
)

// openCommand enters command mode, capturing the series under the list
// cursor and the crosshair time for the prompt to act on.
func (m *model) openCommand(cmd Command, initial string) {
	m.data.pendingSeries = m.cursorSeries()
	m.data.pendingSec = m.data.crosshair
	m.ui.command = CommandInput{cmd: cmd, buf: initial}
	m.ui.mode = modeCommand
	logging.Debugf("command open cmd=%s series=%q", commandLabel(cmd), m.data.pendingSeries)
}

func (m *model) runCommand() tea.Cmd {
	buf := strings.TrimSpace(m.ui.command.buf)
	switch m.ui.command.cmd {
	case CmdFilter:
		m.setSeriesFilter(buf)
		return nil

	case CmdRule:
		return m.applyRule(m.data.pendingSeries, buf)

	case CmdThreshold:
		v, err := strconv.ParseFloat(buf, 64)
		if err != nil {
			return m.startNotice("Invalid threshold value", "warn", noticeDuration)
		}
		th := m.sess.Annotations().AddThreshold(m.data.pendingSeries, v)
		logging.Infof("threshold %s added on %s at %g", th.ID, th.Series, th.Value)
		return m.startNotice(fmt.Sprintf("Threshold %s = %g", th.Series, v), "success", noticeDuration)

	case CmdEvent:
		if buf == "" {
			return m.startNotice("Event text is empty", "warn", noticeDuration)
		}
		h, ok := m.sess.AddEventAt(m.data.pendingSec, buf)
		if !ok {
			return m.startNotice("Nothing loaded", "warn", noticeDuration)
		}
		return m.startNotice("Event added: "+h.Label, "success", noticeDuration)

	case CmdBookmark:
		b, ok := m.sess.AddBookmarkAt(m.data.pendingSec, buf)
		if !ok {
			return m.startNotice("Nothing loaded", "warn", noticeDuration)
		}
		return m.startNotice("Bookmark added: "+b.Label, "success", noticeDuration)

	case CmdRegion:
		r, ok := m.sess.Annotations().CommitRegion(m.data.pendingSpan, buf)
		if !ok {
			return m.startNotice("Highlight canceled", "info", noticeDuration)
		}
		return m.startNotice("Region added: "+r.Label, "success", noticeDuration)

	case CmdColor:
		if !m.sess.Series().SetColor(m.data.pendingSeries, buf) {
			return m.startNotice("Invalid color "+buf, "warn", noticeDuration)
		}
		return nil

	case CmdTimeColumn:
		m.sess.SetTimeColumn(buf)
		if m.data.path == "" {
			return nil
		}
		return m.loadPrimary(m.data.path)
	}
	return nil
}

func (m *model) applyRule(name, text string) tea.Cmd {
	if name == "" {
		return m.startNotice("No series selected", "warn", noticeDuration)
	}
	r, err := events.ParseRule(text)
	if err != nil {
		return m.startNotice(err.Error(), "warn", noticeDuration)
	}
	if !m.sess.SetRule(name, r) {
		return m.startNotice("Unknown series "+name, "warn", noticeDuration)
	}
	if r.Empty() {
		return m.startNotice("Rule cleared for "+name, "info", noticeDuration)
	}
	return m.startNotice(fmt.Sprintf("Rule %s: %s", name, r), "success", noticeDuration)
}

func (m *model) exitCommandMode() {
	if m.ui.command.cmd == CmdRegion {
		m.sess.Annotations().Highlight.Disarm()
	}
	m.ui.command = CommandInput{}
	m.ui.mode = modeView
}

func (m *model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// universal cancel
	if msg.Type == tea.KeyEsc {
		m.exitCommandMode()
		return m, nil
	}

	// commit
	if msg.Type == tea.KeyEnter {
		cmd := m.runCommand()
		m.exitCommandMode()
		return m, cmd
	}

	// editing
	switch msg.Type {
	case tea.KeyBackspace:
		if r := []rune(m.ui.command.buf); len(r) > 0 {
			m.ui.command.buf = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.ui.command.buf += " "
		return m, nil
	}

	// append printable runes, including pastes
	if msg.Type == tea.KeyRunes {
		m.ui.command.buf += string(msg.Runes)
	}
	return m, nil
}
