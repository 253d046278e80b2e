package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/andareed/siftly-dash/annotate"
	"github.com/andareed/siftly-dash/events"
	"github.com/andareed/siftly-dash/logging"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const (
	footerHeight       = 2
	sidePanelMinWidth  = 26
	sidePanelMaxWidth  = 44
	entryTimeLayout    = "01/02 15:04:05"
	minChartInnerWidth = 20
)

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		w, h := m.terminalWidth, m.terminalHeight
		return lipgloss.Place(
			w, h,
			lipgloss.Center, lipgloss.Center,
			m.activeDialog.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceBackground(lipgloss.Color("236")),
		)
	}

	width := max(0, m.terminalWidth-appstyle.GetHorizontalMargins())

	var drawers []string
	if m.ui.notesOpen {
		m.notesInput.SetWidth(max(10, width-2))
		drawers = append(drawers, drawerArea.Width(width).Render(m.notesInput.View()))
	}
	if m.ui.timeWindow.open {
		drawers = append(drawers, m.timeWindowDrawerView(width))
	}
	drawerH := 0
	for _, d := range drawers {
		drawerH += lipgloss.Height(d)
	}

	bodyH := max(6, m.terminalHeight-footerHeight-drawerH)
	sideW := clamp(width/4, sidePanelMinWidth, sidePanelMaxWidth)
	chartW := max(minChartInnerWidth+2, width-sideW)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.chartView(chartW, bodyH),
		m.sidePanelView(sideW, bodyH),
	)

	parts := []string{body}
	parts = append(parts, drawers...)
	parts = append(parts, m.footerView(width))
	return appstyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// chartView renders the title row and the framed plot, and records where
// the plot landed on screen.
func (m *model) chartView(w, h int) string {
	innerW, innerH := w-2, h-3
	title := chartTitleStyle.Render(truncatePlain(m.chartTitle(), w))

	if !m.sess.Loaded() || !m.data.hasView {
		msg := "No data loaded. Press o to open a file."
		if m.ui.loading != "" {
			msg = "Loading " + filepath.Base(m.ui.loading) + "…"
		}
		box := chartFrameStyle.Width(innerW).Height(innerH).
			Align(lipgloss.Center, lipgloss.Center).Render(msg)
		m.data.layout = chartLayout{}
		return lipgloss.JoinVertical(lipgloss.Left, title, box)
	}

	in := chartInput{
		Curves:    m.sess.Curves(),
		Overlays:  m.sess.Overlays(),
		View:      m.data.view,
		Crosshair: m.data.crosshair,
		Location:  m.sess.Location(),
		Markers:   m.sess.Markers,
	}
	if m.sess.CompareEnabled() {
		in.References = m.sess.ReferenceCurves()
	}
	hl := &m.sess.Annotations().Highlight
	if hl.State() == annotate.ArmedSecond {
		if ns, ok := hl.Anchor(); ok {
			sec := float64(ns) / 1e9
			in.Anchor = &sec
		}
	}

	plot, layout := renderChart(in, innerW, innerH)
	m.data.layout = layout
	m.data.chartLeft = appstyle.GetMarginLeft() + 1
	m.data.chartTop = lipgloss.Height(title) + 1
	return lipgloss.JoinVertical(lipgloss.Left, title, chartFrameStyle.Width(innerW).Height(innerH).Render(plot))
}

func (m *model) chartTitle() string {
	if !m.sess.Loaded() {
		return "sfdash"
	}
	parts := []string{filepath.Base(m.data.path), m.sess.AxisLabel()}
	if m.sess.CompareEnabled() && m.data.refPath != "" {
		parts = append(parts, "vs "+filepath.Base(m.data.refPath))
	}
	if st := m.sess.Annotations().Highlight.State(); st != annotate.Idle {
		parts = append(parts, "highlight: "+st.String())
	}
	if m.ui.loading != "" && m.ui.stage != "" {
		parts = append(parts, m.ui.stage+"…")
	}
	return strings.Join(parts, " · ")
}

func (m *model) sidePanelView(w, h int) string {
	style := panelStyle
	if m.ui.mode == modePanel {
		style = panelFocusStyle
	}
	innerW, innerH := w-2, h-2

	tabs := make([]string, 0, 4)
	for p := panelSeries; p <= panelInfo; p++ {
		t := p.title()
		if p == m.ui.panel {
			t = panelTitleStyle.Render("[" + t + "]")
		} else {
			t = panelDimStyle.Render(t)
		}
		tabs = append(tabs, t)
	}
	header := truncatePlain(strings.Join(tabs, " "), innerW)

	listH := max(0, innerH-1)
	var body string
	switch m.ui.panel {
	case panelBookmarks:
		body = m.bookmarkList(innerW, listH)
	case panelEvents:
		body = m.eventList(innerW, listH)
	case panelInfo:
		body = m.infoView(innerW, listH)
	default:
		body = m.seriesList(innerW, listH)
	}
	return style.Width(innerW).Height(innerH).Render(header + "\n" + body)
}

// windowAround picks the slice of n rows to show so cursor stays visible.
func windowAround(cursor, n, height int) (int, int) {
	if height <= 0 || n == 0 {
		return 0, 0
	}
	start := clamp(cursor-height/2, 0, max(0, n-height))
	return start, min(n, start+height)
}

func (m *model) seriesList(w, h int) string {
	sm := m.sess.Series()
	if sm == nil {
		return panelDimStyle.Render("(no series)")
	}
	if len(m.data.listed) == 0 {
		return panelDimStyle.Render(fmt.Sprintf("(no match for %q)", m.data.filter))
	}

	cols := layoutColumns(seriesColumns(), w)
	ds := m.sess.Dataset()
	idx := m.sess.NearestIndex(m.data.crosshair)

	start, end := windowAround(m.data.listCursor, len(m.data.listed), h)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		name := m.data.listed[i]
		st, _ := sm.State(name)

		value := ""
		if idx >= 0 {
			if v := ds.Series[name][idx]; !math.IsNaN(v) && !math.IsInf(v, 0) {
				value = fmt.Sprintf("%.4g", v)
			}
		}
		flags := ""
		if _, ok := m.sess.Rules().Get(name); ok {
			flags += ruleMarker
		}
		if sm.Downsample(name) {
			flags += dsMarker
		}

		row := newPanelRow(seriesSwatch(st.Style.Color, st.Active), name, value, flags)
		style := panelRowStyle
		if !st.Active {
			style = panelDimStyle
		}
		if i == m.data.listCursor {
			style = panelSelectedStyle
		}
		lines = append(lines, row.Render(style, cols))
	}
	return strings.Join(lines, "\n")
}

func (m *model) bookmarkList(w, h int) string {
	bms := m.sess.Annotations().Bookmarks()
	if len(bms) == 0 {
		return panelDimStyle.Render("(no bookmarks: b adds one)")
	}
	loc := m.sess.Location()
	cols := layoutColumns(entryColumns(), w)
	start, end := windowAround(m.ui.panelCursor, len(bms), h)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		b := bms[i]
		row := newPanelRow(time.Unix(0, b.TimeNS).In(loc).Format(entryTimeLayout), chartBookmarkStyle.Render(string(bookmarkRune)), b.Label)
		lines = append(lines, row.Render(m.entryStyle(i), cols))
	}
	return strings.Join(lines, "\n")
}

func (m *model) eventList(w, h int) string {
	evs := m.sess.Annotations().EventsByTime()
	if len(evs) == 0 {
		return panelDimStyle.Render("(no events: e adds one, R runs rules)")
	}
	loc := m.sess.Location()
	cols := layoutColumns(entryColumns(), w)
	start, end := windowAround(m.ui.panelCursor, len(evs), h)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		ev := evs[i]
		glyph := chartManualEventStyle.Render(string(eventRune))
		if ev.Origin == events.OriginRule {
			glyph = chartRuleEventStyle.Render(string(eventRune))
		}
		row := newPanelRow(time.Unix(0, ev.TimeNS).In(loc).Format(entryTimeLayout), glyph, ev.Label)
		lines = append(lines, row.Render(m.entryStyle(i), cols))
	}
	return strings.Join(lines, "\n")
}

func (m *model) entryStyle(i int) lipgloss.Style {
	if m.ui.mode == modePanel && i == m.ui.panelCursor {
		return panelSelectedStyle
	}
	return panelRowStyle
}

func (m *model) infoView(w, h int) string {
	m.infoPort.Width = w
	m.infoPort.Height = h
	m.infoPort.SetContent(wordwrap.String(m.infoText(), w))
	return m.infoPort.View()
}

// footerView renders the 2-line footer.
func (m *model) footerView(width int) string {
	styles := DefaultFooterStyles()

	st := FooterState{
		Mode:     m.footerModeLabel(),
		FileName: filepath.Base(m.data.path),
		Scale:    m.sess.Scale().String(),
		Compare:  "off",
		Legend:   "(? help · / filter · g range · n notes)",
	}
	if m.data.path == "" {
		st.FileName = ""
	}
	if sm := m.sess.Series(); sm != nil {
		st.Downsample = sm.DownsampleDefault()
		st.Active = len(sm.Active())
		st.Total = len(sm.Ordered())
	} else {
		st.Downsample = m.cfg.Downsample
	}
	if m.sess.CompareEnabled() {
		st.Compare = "on"
		if m.sess.Comparison() != nil {
			st.Compare = filepath.Base(m.data.refPath)
		}
	}

	switch {
	case m.ui.mode == modeCommand:
		st.ModeInput = m.activeCommandLine()
		st.StatusMessage = m.commandHintsLine(m.ui.command.cmd)
	case m.ui.noticeMsg != "":
		st.StatusMessage = noticeText(m.ui.noticeMsg, m.ui.noticeType)
	case m.ui.loading != "":
		st.StatusMessage = fmt.Sprintf("Loading %s (%s)", filepath.Base(m.ui.loading), m.ui.stage)
	case m.sess.Loaded():
		sec := m.data.crosshair
		if m.data.hasHover {
			sec = m.data.hover
		}
		st.StatusMessage = m.sess.Readout(sec)
		if label := m.loadRangeLabel(); label != "" {
			st.StatusMessage += "  " + label
		}
	default:
		st.StatusMessage = m.idleCommandHintsLine()
	}

	if logging.IsDebugMode() {
		st.Legend += fmt.Sprintf(" | dbg term=%dx%d plot=%dx%d@%d,%d",
			m.terminalWidth, m.terminalHeight,
			m.data.layout.graphWidth, m.data.layout.graphRows,
			m.data.chartLeft, m.data.chartTop)
	}

	return RenderFooter(width, st, styles)
}

func (m *model) footerModeLabel() string {
	switch m.ui.mode {
	case modeCommand:
		return commandLabel(m.ui.command.cmd)
	case modeNotes:
		return "NOTES"
	case modeTimeWindow:
		return "RANGE"
	case modePanel:
		return strings.ToUpper(m.ui.panel.title())
	default:
		return commandLabel(CmdNone)
	}
}
