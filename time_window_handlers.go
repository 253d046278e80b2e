package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/andareed/siftly-dash/logging"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *model) openTimeWindowDrawer() {
	tw := &m.ui.timeWindow
	tw.open = true
	tw.errorMsg = ""
	if tw.step < 0 || tw.step >= len(timeWindowSteps) {
		tw.step = timeWindowStepDefault
	}

	if _, _, ok := m.timeBounds(); !ok {
		tw.errorMsg = "No timestamps available"
		tw.startInput.SetValue("")
		tw.endInput.SetValue("")
		tw.draftStart = time.Time{}
		tw.draftEnd = time.Time{}
	} else {
		tw.draftStart, tw.draftEnd = m.drawerWindow()
		m.updateTimeWindowInputsFromDraft()
	}
	m.setTimeWindowFocus(timeWindowFocusStart)
	m.ui.mode = modeTimeWindow
}

func (m *model) closeTimeWindowDrawer() {
	m.ui.timeWindow.open = false
	m.ui.timeWindow.errorMsg = ""
	m.setTimeWindowFocus(timeWindowFocusScrubber)
	m.ui.mode = modeView
}

func (m *model) handleTimeWindowKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tw := &m.ui.timeWindow

	switch {
	case msg.Type == tea.KeyEsc:
		m.closeTimeWindowDrawer()
		return m, nil
	case msg.Type == tea.KeyEnter:
		return m, m.applyTimeWindowFromInputs()
	case msg.Type == tea.KeyCtrlL:
		return m, m.applyLoadRange()
	case msg.Type == tea.KeyCtrlX:
		return m, m.clearLoadRange()
	case msg.Type == tea.KeyTab:
		m.setTimeWindowFocus((tw.focus + 1) % 3)
		return m, nil
	case msg.Type == tea.KeyShiftTab:
		m.setTimeWindowFocus((tw.focus + 2) % 3)
		return m, nil
	case tw.focus == timeWindowFocusScrubber && msg.String() == "r":
		m.resetTimeWindowDraft()
		return m, nil
	case tw.focus == timeWindowFocusScrubber && msg.Type == tea.KeyLeft:
		m.shiftTimeWindow(-m.timeWindowStep())
		return m, nil
	case tw.focus == timeWindowFocusScrubber && msg.Type == tea.KeyRight:
		m.shiftTimeWindow(m.timeWindowStep())
		return m, nil
	case tw.focus == timeWindowFocusScrubber && msg.Type == tea.KeyShiftLeft:
		m.expandTimeWindow(-m.timeWindowStep())
		return m, nil
	case tw.focus == timeWindowFocusScrubber && msg.Type == tea.KeyShiftRight:
		m.expandTimeWindow(m.timeWindowStep())
		return m, nil
	case tw.focus == timeWindowFocusScrubber && msg.String() == "-":
		m.adjustTimeWindowStep(false)
		return m, nil
	case tw.focus == timeWindowFocusScrubber && (msg.String() == "+" || msg.String() == "="):
		m.adjustTimeWindowStep(true)
		return m, nil
	}

	var cmd tea.Cmd
	switch tw.focus {
	case timeWindowFocusStart:
		tw.startInput, cmd = tw.startInput.Update(msg)
	case timeWindowFocusEnd:
		tw.endInput, cmd = tw.endInput.Update(msg)
	}
	return m, cmd
}

func (m *model) setTimeWindowFocus(focus int) {
	tw := &m.ui.timeWindow
	tw.focus = focus
	switch focus {
	case timeWindowFocusStart:
		tw.startInput.Focus()
		tw.endInput.Blur()
	case timeWindowFocusEnd:
		tw.startInput.Blur()
		tw.endInput.Focus()
	default:
		tw.startInput.Blur()
		tw.endInput.Blur()
	}
}

func (m *model) updateTimeWindowInputsFromDraft() {
	tw := &m.ui.timeWindow
	if !tw.draftStart.IsZero() {
		tw.startInput.SetValue(tw.draftStart.Format(timeInputLayout))
	}
	if !tw.draftEnd.IsZero() {
		tw.endInput.SetValue(tw.draftEnd.Format(timeInputLayout))
	}
}

func (m *model) syncDraftFromInputs() {
	tw := &m.ui.timeWindow
	loc := m.sess.Location()
	if start, ok := parseRangeInput(tw.startInput.Value(), loc); ok {
		tw.draftStart = start.In(loc)
	}
	if end, ok := parseRangeInput(tw.endInput.Value(), loc); ok {
		tw.draftEnd = end.In(loc)
	}
}

func (m *model) resetTimeWindowDraft() {
	tw := &m.ui.timeWindow
	tw.errorMsg = ""
	lo, hi, ok := m.timeBounds()
	if !ok {
		tw.errorMsg = "No timestamps available"
		return
	}
	tw.draftStart, tw.draftEnd = lo, hi
	m.updateTimeWindowInputsFromDraft()
}

// readInputs parses both fields, recording the first problem in errorMsg.
func (m *model) readInputs() (time.Time, time.Time, bool) {
	tw := &m.ui.timeWindow
	tw.errorMsg = ""
	loc := m.sess.Location()
	start, ok := parseRangeInput(tw.startInput.Value(), loc)
	if !ok {
		tw.errorMsg = "Invalid start time"
		return time.Time{}, time.Time{}, false
	}
	end, ok := parseRangeInput(tw.endInput.Value(), loc)
	if !ok {
		tw.errorMsg = "Invalid end time"
		return time.Time{}, time.Time{}, false
	}
	if !start.Before(end) {
		tw.errorMsg = "Start is not before end"
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// applyTimeWindowFromInputs moves the view to the drafted range.
func (m *model) applyTimeWindowFromInputs() tea.Cmd {
	start, end, ok := m.readInputs()
	if !ok {
		return nil
	}
	r, err := m.sess.GoTo(start, end)
	if err != nil {
		m.ui.timeWindow.errorMsg = describeError(err)
		return nil
	}
	m.setWindow(r)
	m.closeTimeWindowDrawer()
	return m.startNotice("Showing "+start.In(m.sess.Location()).Format(timeInputLayout)+" - "+end.In(m.sess.Location()).Format(timeInputLayout), "info", noticeDuration)
}

// applyLoadRange reloads the file keeping only rows inside the drafted range.
func (m *model) applyLoadRange() tea.Cmd {
	start, end, ok := m.readInputs()
	if !ok {
		return nil
	}
	if m.data.path == "" {
		m.ui.timeWindow.errorMsg = "No file to reload"
		return nil
	}
	if err := m.sess.SetTimeRange(&start, &end); err != nil {
		m.ui.timeWindow.errorMsg = describeError(err)
		return nil
	}
	logging.Infof("load range set to %s - %s", start, end)
	m.closeTimeWindowDrawer()
	return m.loadPrimary(m.data.path)
}

func (m *model) clearLoadRange() tea.Cmd {
	if err := m.sess.SetTimeRange(nil, nil); err != nil {
		m.ui.timeWindow.errorMsg = describeError(err)
		return nil
	}
	m.closeTimeWindowDrawer()
	if m.data.path == "" {
		return nil
	}
	return m.loadPrimary(m.data.path)
}

func (m *model) shiftTimeWindow(delta time.Duration) {
	tw := &m.ui.timeWindow
	tw.errorMsg = ""
	lo, hi, ok := m.timeBounds()
	if !ok {
		tw.errorMsg = "No timestamps available"
		return
	}

	m.syncDraftFromInputs()
	if tw.draftStart.IsZero() || tw.draftEnd.IsZero() {
		tw.draftStart, tw.draftEnd = lo, hi
	}

	rangeDur := hi.Sub(lo)
	windowDur := tw.draftEnd.Sub(tw.draftStart)
	if windowDur <= 0 {
		windowDur = timeWindowSteps[0]
	}
	if windowDur > rangeDur {
		tw.draftStart, tw.draftEnd = lo, hi
		m.updateTimeWindowInputsFromDraft()
		return
	}

	nextStart := tw.draftStart.Add(delta)
	nextEnd := tw.draftEnd.Add(delta)
	if nextStart.Before(lo) {
		nextStart = lo
		nextEnd = lo.Add(windowDur)
	}
	if nextEnd.After(hi) {
		nextEnd = hi
		nextStart = hi.Add(-windowDur)
	}

	tw.draftStart = nextStart
	tw.draftEnd = nextEnd
	m.updateTimeWindowInputsFromDraft()
}

func (m *model) timeWindowStep() time.Duration {
	i := clamp(m.ui.timeWindow.step, 0, len(timeWindowSteps)-1)
	return timeWindowSteps[i]
}

func (m *model) adjustTimeWindowStep(increase bool) {
	i := m.ui.timeWindow.step
	if increase {
		i++
	} else {
		i--
	}
	m.ui.timeWindow.step = clamp(i, 0, len(timeWindowSteps)-1)
}

func (m *model) expandTimeWindow(delta time.Duration) {
	tw := &m.ui.timeWindow
	tw.errorMsg = ""
	lo, hi, ok := m.timeBounds()
	if !ok {
		tw.errorMsg = "No timestamps available"
		return
	}

	m.syncDraftFromInputs()
	if tw.draftStart.IsZero() || tw.draftEnd.IsZero() {
		tw.draftStart, tw.draftEnd = lo, hi
	}

	if delta < 0 {
		tw.draftStart = clampTimeToBounds(tw.draftStart.Add(delta), lo, hi)
	} else if delta > 0 {
		tw.draftEnd = clampTimeToBounds(tw.draftEnd.Add(delta), lo, hi)
	}
	m.updateTimeWindowInputsFromDraft()
}

func formatStep(step time.Duration) string {
	switch {
	case step%(24*time.Hour) == 0:
		return fmt.Sprintf("%dd", int(step/(24*time.Hour)))
	case step%time.Hour == 0:
		return fmt.Sprintf("%dh", int(step/time.Hour))
	case step%time.Minute == 0:
		return fmt.Sprintf("%dm", int(step/time.Minute))
	default:
		return fmt.Sprintf("%ds", int(step/time.Second))
	}
}

func (m *model) timeWindowDrawerView(width int) string {
	tw := &m.ui.timeWindow
	innerWidth := max(0, width-2)
	lineStyle := lipgloss.NewStyle().Width(innerWidth)

	zone, _ := time.Now().In(m.sess.Location()).Zone()
	startLine := fmt.Sprintf("Start (%s): %s", zone, tw.startInput.View())
	endLine := fmt.Sprintf("End   (%s): %s", zone, tw.endInput.View())
	scrubberLine := m.timeWindowScrubberLine(innerWidth)
	step := formatStep(m.timeWindowStep())
	helpLine := fmt.Sprintf("tab: next  enter: go to  ctrl+l: reload range  ctrl+x: clear range  esc: close  ←/→: move %s  shift+←/→: expand %s  -/+: step  r: reset",
		step, step)
	errorLine := ""
	if tw.errorMsg != "" {
		errorLine = "Error: " + tw.errorMsg
	}

	lines := []string{
		lineStyle.Render(startLine),
		lineStyle.Render(endLine),
		lineStyle.Render(scrubberLine),
		lineStyle.Render(truncatePlain(helpLine, innerWidth)),
		lineStyle.Render(errorLine),
	}

	return drawerArea.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *model) timeWindowScrubberLine(width int) string {
	lo, hi, ok := m.timeBounds()
	if !ok {
		return "Scrubber: n/a"
	}

	start := m.ui.timeWindow.draftStart
	end := m.ui.timeWindow.draftEnd
	if start.IsZero() || end.IsZero() {
		start, end = lo, hi
	}

	minLabel := lo.Format(timeInputLayout)
	maxLabel := hi.Format(timeInputLayout)
	padding := 2
	barWidth := width - len(minLabel) - len(maxLabel) - padding*2
	rangeDur := hi.Sub(lo)
	if barWidth < 10 || rangeDur <= 0 {
		return fmt.Sprintf("Window: %s - %s", start.Format(timeInputLayout), end.Format(timeInputLayout))
	}

	bar := []rune(strings.Repeat("-", barWidth))
	pos := func(t time.Time) int {
		t = clampTimeToBounds(t, lo, hi)
		return int(float64(barWidth-1) * t.Sub(lo).Seconds() / rangeDur.Seconds())
	}
	startPos, endPos := pos(start), pos(end)
	if endPos < startPos {
		startPos, endPos = endPos, startPos
	}
	for i := startPos; i <= endPos; i++ {
		bar[i] = '='
	}
	bar[startPos] = '['
	bar[endPos] = ']'

	return fmt.Sprintf("%s  %s  %s", minLabel, string(bar), maxLabel)
}

// loadRangeLabel describes the active load filter for the status line.
func (m *model) loadRangeLabel() string {
	r := m.sess.TimeRange()
	if r.Start == nil && r.End == nil {
		return ""
	}
	loc := m.sess.Location()
	format := func(t *time.Time) string {
		if t == nil {
			return "…"
		}
		return t.In(loc).Format(timeInputLayout)
	}
	return fmt.Sprintf("Loaded range: %s - %s", format(r.Start), format(r.End))
}
