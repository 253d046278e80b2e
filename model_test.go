package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andareed/siftly-dash/config"
	"github.com/andareed/siftly-dash/dialogs"
	"github.com/andareed/siftly-dash/session"
	"github.com/andareed/siftly-dash/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const shellCSV = "Date UTC,TempA,TempB,Flow\n" +
	"2024-01-01 00:00:00,1,10,0\n" +
	"2024-01-01 00:00:10,,,\n" +
	"2024-01-01 00:00:20,7,-3,5\n" +
	"2024-01-01 00:16:40,2,4,1\n"

func newLoadedModel(t *testing.T) *model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run1.csv")
	if err := os.WriteFile(path, []byte(shellCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	sess := session.New(session.Options{ActiveLimit: 6, Downsample: true})
	if err := sess.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	m := newModel(sess, config.Default(), nil)
	m.data.path = path
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(m *model, keys ...string) {
	for _, k := range keys {
		m.Update(keyMsg(k))
	}
}

func TestFilterNarrowsSeriesList(t *testing.T) {
	t.Parallel()

	m := newLoadedModel(t)
	if len(m.data.listed) != 3 {
		t.Fatalf("listed %v, want 3 series", m.data.listed)
	}
	press(m, "/", "temp", "enter")
	if m.ui.mode != modeView {
		t.Fatalf("mode = %d after enter", m.ui.mode)
	}
	for _, name := range m.data.listed {
		if !strings.HasPrefix(name, "Temp") {
			t.Fatalf("unexpected series %q after filter", name)
		}
	}
	if len(m.data.listed) != 2 {
		t.Fatalf("listed %v, want TempA and TempB", m.data.listed)
	}
}

func TestToggleAndBulkSeries(t *testing.T) {
	t.Parallel()

	m := newLoadedModel(t)
	name := m.cursorSeries()
	before := m.sess.Series().IsActive(name)
	press(m, " ")
	if m.sess.Series().IsActive(name) == before {
		t.Fatalf("space did not toggle %s", name)
	}
	press(m, "D")
	if n := len(m.sess.Series().Active()); n != 0 {
		t.Fatalf("all off left %d active", n)
	}
	press(m, "A")
	if n := len(m.sess.Series().Active()); n != 3 {
		t.Fatalf("all on gave %d active", n)
	}
}

func TestRuleAndRunConditions(t *testing.T) {
	t.Parallel()

	m := newLoadedModel(t)
	press(m, "/", "TempA", "enter")
	press(m, "r", "gt=5", "enter")
	if r, ok := m.sess.Rules().Get("TempA"); !ok || r.String() == "" {
		t.Fatal("rule not stored for TempA")
	}
	press(m, "R")
	evs := m.sess.Annotations().Events()
	if len(evs) != 1 || evs[0].Series != "TempA" {
		t.Fatalf("events = %+v, want one TempA hit", evs)
	}
}

func TestEscCancelsPrompt(t *testing.T) {
	t.Parallel()

	m := newLoadedModel(t)
	press(m, "t", "12", "esc")
	if m.ui.mode != modeView {
		t.Fatal("esc should leave command mode")
	}
	if n := len(m.sess.Annotations().Thresholds()); n != 0 {
		t.Fatalf("canceled prompt added %d thresholds", n)
	}
}

func TestThresholdAndBookmark(t *testing.T) {
	t.Parallel()

	m := newLoadedModel(t)
	press(m, "t", "4.5", "enter")
	ths := m.sess.Annotations().Thresholds()
	if len(ths) != 1 || ths[0].Value != 4.5 {
		t.Fatalf("thresholds = %+v", ths)
	}

	press(m, "b", "peak", "enter")
	bms := m.sess.Annotations().Bookmarks()
	if len(bms) != 1 || bms[0].Label != "peak" {
		t.Fatalf("bookmarks = %+v", bms)
	}

	press(m, "B")
	if m.ui.mode != modePanel || m.ui.panel != panelBookmarks {
		t.Fatal("B should focus the bookmarks panel")
	}
	press(m, "enter")
	if !m.data.view.X.Contains(float64(bms[0].TimeNS) / 1e9) {
		t.Fatal("jump did not bring the bookmark into view")
	}
	press(m, "x")
	if n := len(m.sess.Annotations().Bookmarks()); n != 0 {
		t.Fatalf("delete left %d bookmarks", n)
	}
	press(m, "esc")
	if m.ui.mode != modeView || m.ui.panel != panelSeries {
		t.Fatal("esc should return to the series list")
	}
}

func TestHighlightCreatesRegion(t *testing.T) {
	t.Parallel()

	m := newLoadedModel(t)
	press(m, "h", "enter", "right", "enter")
	if m.ui.mode != modeCommand || m.ui.command.cmd != CmdRegion {
		t.Fatalf("second click should prompt for a label, mode=%d cmd=%d", m.ui.mode, m.ui.command.cmd)
	}
	press(m, "warmup", "enter")
	regions := m.sess.Annotations().Regions()
	if len(regions) != 1 || regions[0].Label != "warmup" {
		t.Fatalf("regions = %+v", regions)
	}
	if regions[0].StartNS >= regions[0].EndNS {
		t.Fatal("region should span two distinct instants")
	}
}

func TestBlankRegionLabelCancels(t *testing.T) {
	t.Parallel()

	m := newLoadedModel(t)
	press(m, "h", "enter", "right", "enter", "enter")
	if n := len(m.sess.Annotations().Regions()); n != 0 {
		t.Fatalf("blank label committed %d regions", n)
	}
}

func TestZoomPanAndScale(t *testing.T) {
	t.Parallel()

	m := newLoadedModel(t)
	span := m.data.view.X.Span()
	press(m, "]")
	if got := m.data.view.X.Span(); got >= span {
		t.Fatalf("zoom in did not shrink X: %v -> %v", span, got)
	}
	left := m.data.view.X.Min
	m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	if m.data.view.X.Min <= left {
		t.Fatal("pan right did not move the view")
	}
	press(m, "F")
	press(m, "N")
	if m.sess.Scale() != viewport.Normalize {
		t.Fatalf("scale = %v", m.sess.Scale())
	}
	if m.data.view.Y.Max > 1.1 {
		t.Fatalf("normalized fit Y = %+v", m.data.view.Y)
	}
}

func TestTimeWindowGoTo(t *testing.T) {
	t.Parallel()

	m := newLoadedModel(t)
	press(m, "g")
	if m.ui.mode != modeTimeWindow || !m.ui.timeWindow.open {
		t.Fatal("g should open the range drawer")
	}
	loc := m.sess.Location()
	start := m.sess.Dataset().Time(0)
	end := m.sess.Dataset().Time(1)
	m.ui.timeWindow.startInput.SetValue(start.In(loc).Format(timeInputLayout))
	m.ui.timeWindow.endInput.SetValue(end.In(loc).Format(timeInputLayout))
	press(m, "enter")

	if m.ui.mode != modeView {
		t.Fatalf("drawer still open: %q", m.ui.timeWindow.errorMsg)
	}
	x := m.data.view.X
	if !x.Contains(float64(start.Unix())) || !x.Contains(float64(end.Unix())) || x.Span() > 30 {
		t.Fatalf("view X = %+v", x)
	}
}

func TestTimeWindowRejectsReversedRange(t *testing.T) {
	t.Parallel()

	m := newLoadedModel(t)
	press(m, "g")
	m.ui.timeWindow.startInput.SetValue("2024-01-01 10:00:00")
	m.ui.timeWindow.endInput.SetValue("2024-01-01 09:00:00")
	press(m, "enter")
	if m.ui.mode != modeTimeWindow || m.ui.timeWindow.errorMsg == "" {
		t.Fatal("reversed range should keep the drawer open with an error")
	}
}

func TestExportVisible(t *testing.T) {
	t.Parallel()

	m := newLoadedModel(t)
	out := filepath.Join(t.TempDir(), "visible.csv")
	m.Update(dialogs.ExportConfirmedMsg{Path: out})
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("export not written: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if !strings.HasPrefix(lines[0], "Timestamp (") {
		t.Fatalf("header = %q", lines[0])
	}
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header plus 3 rows", len(lines))
	}
}

func TestScratchpadKeepsText(t *testing.T) {
	t.Parallel()

	m := newLoadedModel(t)
	press(m, "n")
	if m.ui.mode != modeNotes {
		t.Fatal("n should open the scratchpad")
	}
	press(m, "check pump", "esc")
	if m.sess.Scratchpad != "check pump" {
		t.Fatalf("scratchpad = %q", m.sess.Scratchpad)
	}
	if !strings.Contains(m.infoText(), "check pump") {
		t.Fatal("info text should include the scratchpad")
	}
}

func TestViewRenders(t *testing.T) {
	t.Parallel()

	m := newLoadedModel(t)
	out := m.View()
	for _, want := range []string{"run1.csv", "TempA", "NORMAL"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if m.data.layout.graphWidth <= 0 {
		t.Fatal("chart layout not recorded")
	}

	press(m, "?")
	if m.activeDialog == nil || !strings.Contains(m.View(), "fit view") {
		t.Fatal("help dialog not shown")
	}
}

func TestMouseClickMovesCrosshair(t *testing.T) {
	t.Parallel()

	m := newLoadedModel(t)
	m.View()
	col := m.data.chartLeft + m.data.layout.originX + 1
	m.Update(tea.MouseMsg{
		X:      col,
		Y:      m.data.chartTop,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	if m.data.crosshair != m.data.view.X.Min {
		t.Fatalf("crosshair = %v, want left edge %v", m.data.crosshair, m.data.view.X.Min)
	}
}
