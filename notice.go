package main

import (
	"errors"
	"time"

	"github.com/andareed/siftly-dash/dataset"
	"github.com/andareed/siftly-dash/logging"
	"github.com/andareed/siftly-dash/session"
	"github.com/andareed/siftly-dash/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type clearNoticeMsg struct{ id int }

const (
	noticeDuration      = 2 * time.Second
	errorNoticeDuration = 5 * time.Second
)

func noticeText(msg, kind string) string {
	if msg == "" {
		return ""
	}
	var icon string
	switch kind {
	case "info":
		icon = "ℹ"
	case "success":
		icon = "✓"
	case "warn":
		icon = "!"
	case "error":
		icon = "×"
	}
	if icon == "" {
		return msg
	}
	return icon + " " + msg
}

func (m *model) startNotice(msg, msgType string, d time.Duration) tea.Cmd {
	m.ui.noticeMsg = msg
	m.ui.noticeType = msgType

	// bump sequence to invalidate older timers
	m.ui.noticeSeq++
	id := m.ui.noticeSeq

	return tea.Tick(d, func(time.Time) tea.Msg { return clearNoticeMsg{id: id} })
}

// errorNotice turns a failure into one human-readable line.
func (m *model) errorNotice(err error) tea.Cmd {
	logging.Errorf("%v", err)
	return m.startNotice(describeError(err), "error", errorNoticeDuration)
}

func describeError(err error) string {
	var ie *dataset.IngestError
	switch {
	case errors.As(err, &ie) && ie.Kind == dataset.FileNotFound:
		return "File not found: " + ie.Path
	case errors.As(err, &ie) && ie.Kind == dataset.NoNumericSeries:
		return "No numeric series in " + ie.Path
	case errors.As(err, &ie) && ie.Kind == dataset.ParseError:
		return "Could not parse " + ie.Path
	case errors.Is(err, viewport.ErrRange):
		return "Start must be before end"
	case errors.Is(err, session.ErrNothingVisible):
		return "No points in the visible time range"
	case errors.Is(err, session.ErrNoActiveSeries):
		return "No active series to export"
	case errors.Is(err, session.ErrNotLoaded):
		return "Load a file first"
	case errors.Is(err, session.ErrCompareDisabled):
		return "Turn comparison on first (c)"
	default:
		return err.Error()
	}
}
