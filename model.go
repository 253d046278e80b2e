package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/andareed/siftly-dash/clipboard"
	"github.com/andareed/siftly-dash/config"
	"github.com/andareed/siftly-dash/dataset"
	"github.com/andareed/siftly-dash/dialogs"
	"github.com/andareed/siftly-dash/logging"
	"github.com/andareed/siftly-dash/session"
	"github.com/andareed/siftly-dash/viewport"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	bubbleport "github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type mode int

const (
	modeView mode = iota
	modeCommand
	modeNotes
	modeTimeWindow
	modePanel
)

type model struct {
	sess *session.Session
	cfg  config.Config
	keys Keymap

	ui   uiState
	data dataState

	notesInput textarea.Model
	infoPort   bubbleport.Model

	activeDialog dialogs.Dialog

	terminalWidth  int
	terminalHeight int
	ready          bool

	progress chan dataset.Stage
}

type (
	loadedMsg struct {
		ds   *dataset.Dataset
		path string
		ref  bool
	}
	loadFailedMsg struct {
		path string
		ref  bool
		err  error
	}
	progressMsg struct{ stage dataset.Stage }
)

const progressBuffer = 8

func newModel(sess *session.Session, cfg config.Config, progress chan dataset.Stage) *model {
	m := &model{
		sess:       sess,
		cfg:        cfg,
		keys:       Keys,
		notesInput: newNotesInput(),
		infoPort:   bubbleport.New(0, 0),
		progress:   progress,
	}
	m.ui.mode = modeView
	m.ui.timeWindow = timeWindowUI{
		focus:      timeWindowFocusScrubber,
		startInput: initTimeWindowInput(),
		endInput:   initTimeWindowInput(),
		step:       timeWindowStepDefault,
	}
	sess.Markers = cfg.Markers
	return m
}

// progressReporter forwards load stages to ch without ever blocking the
// parser; stages are dropped when nobody is listening.
func progressReporter(ch chan dataset.Stage) func(dataset.Stage) {
	return func(s dataset.Stage) {
		select {
		case ch <- s:
		default:
		}
	}
}

func (m *model) listenProgress() tea.Cmd {
	if m.progress == nil {
		return nil
	}
	ch := m.progress
	return func() tea.Msg { return progressMsg{stage: <-ch} }
}

func (m *model) Init() tea.Cmd {
	m.applyFilter()
	m.fitView()
	logging.Infof("sfdash: initialised with %q", m.data.path)
	return m.listenProgress()
}

// loadPrimary parses path off the update loop; the result is installed
// when loadedMsg arrives.
func (m *model) loadPrimary(path string) tea.Cmd {
	m.ui.loading = path
	opts := m.sess.LoadOptions()
	return func() tea.Msg {
		ds, err := dataset.Load(path, opts)
		if err != nil {
			return loadFailedMsg{path: path, err: err}
		}
		return loadedMsg{ds: ds, path: path}
	}
}

func (m *model) loadReference(path string) tea.Cmd {
	m.ui.loading = path
	opts := m.sess.LoadOptions()
	opts.Range = dataset.TimeRange{}
	opts.TimeColumn = ""
	return func() tea.Msg {
		ds, err := dataset.Load(path, opts)
		if err != nil {
			return loadFailedMsg{path: path, ref: true, err: err}
		}
		return loadedMsg{ds: ds, path: path, ref: true}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.activeDialog != nil && m.activeDialog.IsVisible() {
			var cmd tea.Cmd
			m.activeDialog, cmd = m.activeDialog.Update(msg)
			return m, cmd
		}
		return m.updateKey(msg)

	case tea.MouseMsg:
		if m.activeDialog != nil && m.activeDialog.IsVisible() {
			return m, nil
		}
		return m, m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.terminalWidth = msg.Width
		m.terminalHeight = msg.Height
		m.ready = true
		return m, nil

	case progressMsg:
		m.ui.stage = msg.stage.String()
		logging.Debugf("load stage %s", m.ui.stage)
		return m, m.listenProgress()

	case loadedMsg:
		return m, m.installLoaded(msg)

	case loadFailedMsg:
		m.ui.loading = ""
		m.ui.stage = ""
		return m, m.errorNotice(fmt.Errorf("load %s: %w", msg.path, msg.err))

	case clearNoticeMsg:
		if msg.id == m.ui.noticeSeq {
			m.ui.noticeMsg = ""
			m.ui.noticeType = ""
		}
		return m, nil

	case dialogs.ExportConfirmedMsg:
		m.activeDialog = nil
		if err := m.exportVisible(msg.Path); err != nil {
			return m, m.errorNotice(err)
		}
		return m, m.startNotice("Exported CSV: "+msg.Path, "success", noticeDuration)

	case dialogs.ExportCanceledMsg:
		m.activeDialog = nil
		return m, m.startNotice("Export canceled", "info", noticeDuration)

	case dialogs.OpenConfirmedMsg:
		m.activeDialog = nil
		if msg.Reference {
			m.sess.EnableCompare()
			return m, m.loadReference(msg.Path)
		}
		return m, m.loadPrimary(msg.Path)

	case dialogs.OpenCanceledMsg:
		m.activeDialog = nil
		return m, nil
	}

	return m, nil
}

func (m *model) installLoaded(msg loadedMsg) tea.Cmd {
	m.ui.loading = ""
	if msg.ref {
		if err := m.sess.InstallReference(msg.ds); err != nil {
			return m.errorNotice(err)
		}
		m.data.refPath = msg.path
		return m.startNotice("Comparing with "+filepath.Base(msg.path), "success", noticeDuration)
	}

	m.sess.Install(msg.ds)
	m.data.path = msg.path
	m.data.hasView = false
	m.ui.panelCursor = 0
	m.applyFilter()
	m.fitView()
	if b, ok := m.sess.Bounds(); ok && !b.Contains(m.data.crosshair) {
		m.data.crosshair = b.Min
	}
	m.ui.stage = dataset.StageRenderDone.String()

	notice := m.startNotice(fmt.Sprintf("Loaded %s: %d rows, %d series",
		filepath.Base(msg.path), msg.ds.Len(), len(msg.ds.Names)), "success", noticeDuration)

	// the reference is aligned against the primary, so it is rebuilt
	if m.sess.CompareEnabled() && m.data.refPath != "" {
		return tea.Batch(notice, m.loadReference(m.data.refPath))
	}
	return notice
}

func (m *model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.ui.mode {
	case modeCommand:
		return m.handleCommandKey(msg)
	case modeNotes:
		return m.handleNotesKey(msg)
	case modeTimeWindow:
		return m.handleTimeWindowKey(msg)
	case modePanel:
		return m.handlePanelKey(msg)
	default:
		return m.handleViewModeKey(msg)
	}
}

func (m *model) handleViewModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.OpenHelp):
		m.activeDialog = dialogs.NewHelpDialog(k.Legend())
		return m, nil

	case key.Matches(msg, k.ScaleLinear):
		return m, m.setScale(viewport.Linear)
	case key.Matches(msg, k.ScaleLog):
		return m, m.setScale(viewport.Log)
	case key.Matches(msg, k.ScaleNorm):
		return m, m.setScale(viewport.Normalize)

	case key.Matches(msg, k.AllOn):
		return m, m.bulkSeries("all")
	case key.Matches(msg, k.AllOff):
		return m, m.bulkSeries("none")
	case key.Matches(msg, k.Invert):
		return m, m.bulkSeries("invert")
	case key.Matches(msg, k.Largest):
		return m, m.bulkSeries("largest")
	case key.Matches(msg, k.Toggle):
		return m, m.toggleCursorSeries()
	case key.Matches(msg, k.RowDown):
		m.moveListCursor(1)
	case key.Matches(msg, k.RowUp):
		m.moveListCursor(-1)
	case key.Matches(msg, k.Filter):
		m.openCommand(CmdFilter, m.data.filter)

	case key.Matches(msg, k.Fit):
		m.fitView()
	case key.Matches(msg, k.ZoomIn):
		m.zoom(viewport.ZoomIn, viewport.AxisXY)
	case key.Matches(msg, k.ZoomOut):
		m.zoom(viewport.ZoomOut, viewport.AxisXY)
	case key.Matches(msg, k.ZoomXIn):
		m.zoom(viewport.ZoomIn, viewport.AxisX)
	case key.Matches(msg, k.ZoomXOut):
		m.zoom(viewport.ZoomOut, viewport.AxisX)
	case key.Matches(msg, k.ZoomYIn):
		m.zoom(viewport.ZoomIn, viewport.AxisY)
	case key.Matches(msg, k.ZoomYOut):
		m.zoom(viewport.ZoomOut, viewport.AxisY)
	case key.Matches(msg, k.PanLeft):
		m.pan(-1)
	case key.Matches(msg, k.PanRight):
		m.pan(1)
	case key.Matches(msg, k.CrossLeft):
		m.stepCrosshair(-1)
	case key.Matches(msg, k.CrossRight):
		m.stepCrosshair(1)

	case key.Matches(msg, k.Downsample):
		return m, m.toggleCursorDownsample()
	case key.Matches(msg, k.DownsampleAll):
		return m, m.toggleDefaultDownsample(false)
	case key.Matches(msg, k.ResetDS):
		return m, m.toggleDefaultDownsample(true)
	case key.Matches(msg, k.Markers):
		return m, m.toggleMarkers()

	case key.Matches(msg, k.Rule):
		return m, m.openSeriesPrompt(CmdRule)
	case key.Matches(msg, k.RunRules):
		return m, m.runConditions()
	case key.Matches(msg, k.Threshold):
		return m, m.openSeriesPrompt(CmdThreshold)
	case key.Matches(msg, k.Color):
		return m, m.openSeriesPrompt(CmdColor)

	case key.Matches(msg, k.Highlight):
		return m, m.toggleHighlight()
	case key.Matches(msg, k.Click):
		return m, m.plotClick(m.data.crosshair)
	case key.Matches(msg, k.AddEvent):
		if m.sess.Loaded() {
			m.openCommand(CmdEvent, "")
		}
	case key.Matches(msg, k.AddBookmark):
		if m.sess.Loaded() {
			m.openCommand(CmdBookmark, "")
		}
	case key.Matches(msg, k.Bookmarks):
		m.focusPanel(panelBookmarks)
	case key.Matches(msg, k.Events):
		m.focusPanel(panelEvents)
	case key.Matches(msg, k.NextPanel):
		m.focusPanel(m.ui.panel + 1)

	case key.Matches(msg, k.GoToRange):
		m.openTimeWindowDrawer()
	case key.Matches(msg, k.OpenFile):
		m.activeDialog = dialogs.NewOpenDialog(m.data.path, false)
	case key.Matches(msg, k.OpenRef):
		m.activeDialog = dialogs.NewOpenDialog(m.data.refPath, true)
	case key.Matches(msg, k.Compare):
		return m, m.toggleCompare()
	case key.Matches(msg, k.TimeColumn):
		current := ""
		if ds := m.sess.Dataset(); ds != nil {
			current = ds.TimeColumn
		}
		m.openCommand(CmdTimeColumn, current)

	case key.Matches(msg, k.ExportToFile):
		if !m.sess.Loaded() {
			return m, m.errorNotice(session.ErrNotLoaded)
		}
		m.activeDialog = dialogs.NewExportDialog(defaultExportName(m.data.path), filepath.Dir(m.data.path))
	case key.Matches(msg, k.CopyInfo):
		return m, m.copyInfo()
	case key.Matches(msg, k.Scratchpad):
		return m, m.openNotes()
	}
	return m, nil
}

// openSeriesPrompt opens a prompt that acts on the series under the list
// cursor, seeded with that series' current value.
func (m *model) openSeriesPrompt(cmd Command) tea.Cmd {
	name := m.cursorSeries()
	if name == "" {
		return m.startNotice("No series selected", "warn", noticeDuration)
	}
	initial := ""
	switch cmd {
	case CmdRule:
		if r, ok := m.sess.Rules().Get(name); ok {
			initial = r.String()
		}
	case CmdColor:
		if st, ok := m.sess.Series().State(name); ok {
			initial = st.Style.Color
		}
	}
	m.openCommand(cmd, initial)
	return nil
}

func (m *model) runConditions() tea.Cmd {
	if !m.sess.Loaded() {
		return m.errorNotice(session.ErrNotLoaded)
	}
	if m.sess.Rules().Len() == 0 {
		return m.startNotice("No rules set (r to add one)", "warn", noticeDuration)
	}
	hits := m.sess.RunConditions()
	return m.startNotice(fmt.Sprintf("Conditions: %d new events", len(hits)), "success", noticeDuration)
}

func (m *model) toggleCompare() tea.Cmd {
	if m.sess.CompareEnabled() {
		m.sess.DisableCompare()
		return m.startNotice("Compare off", "info", noticeDuration)
	}
	m.sess.EnableCompare()
	if m.data.refPath == "" {
		return m.startNotice("Compare on: open a reference with O", "info", noticeDuration)
	}
	return m.loadReference(m.data.refPath)
}

func (m *model) focusPanel(p sidePanel) {
	if p > panelInfo {
		p = panelSeries
	}
	m.ui.panel = p
	m.ui.panelCursor = 0
	if p == panelSeries {
		m.ui.mode = modeView
		return
	}
	m.ui.mode = modePanel
	if p == panelInfo {
		m.infoPort.GotoTop()
	}
}

func (m *model) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.OpenHelp):
		m.activeDialog = dialogs.NewHelpDialog(k.Legend())
	case msg.Type == tea.KeyTab:
		m.focusPanel(m.ui.panel + 1)
	case key.Matches(msg, k.PanelBack):
		m.focusPanel(panelSeries)
	case key.Matches(msg, k.RowDown):
		if m.ui.panel == panelInfo {
			m.infoPort.ScrollDown(1)
			break
		}
		m.ui.panelCursor = clamp(m.ui.panelCursor+1, 0, max(0, m.panelLen()-1))
	case key.Matches(msg, k.RowUp):
		if m.ui.panel == panelInfo {
			m.infoPort.ScrollUp(1)
			break
		}
		m.ui.panelCursor = clamp(m.ui.panelCursor-1, 0, max(0, m.panelLen()-1))
	case key.Matches(msg, k.Click):
		return m, m.jumpToPanelEntry()
	case key.Matches(msg, k.PanelDelete):
		return m, m.deletePanelEntry()
	}
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.ui.mode != modeView && m.ui.mode != modePanel {
		return nil
	}
	if !m.data.hasView || msg.Y < m.data.chartTop || msg.Y >= m.data.chartTop+m.data.layout.graphRows {
		return nil
	}
	sec, ok := columnToSec(msg.X-m.data.chartLeft, m.data.layout, m.data.view.X)
	if !ok {
		return nil
	}

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return m.plotClick(sec)
	case msg.Button == tea.MouseButtonWheelUp:
		m.zoomAt(sec, viewport.ZoomIn)
	case msg.Button == tea.MouseButtonWheelDown:
		m.zoomAt(sec, viewport.ZoomOut)
	case msg.Action == tea.MouseActionMotion:
		m.data.hover = sec
		m.data.hasHover = true
	}
	return nil
}

// infoText is what the info panel shows and what y copies.
func (m *model) infoText() string {
	var b strings.Builder
	if m.sess.Loaded() {
		b.WriteString(m.sess.Readout(m.data.crosshair))
		b.WriteString("\n\n")
	}
	b.WriteString(m.sess.Diagnostics())

	if rs := m.sess.Rules(); rs.Len() > 0 {
		b.WriteString("\n\nRules\n")
		for _, name := range rs.Series() {
			r, _ := rs.Get(name)
			fmt.Fprintf(&b, "  %s: %s\n", name, r)
		}
	}
	if cmp := m.sess.Comparison(); cmp != nil {
		fmt.Fprintf(&b, "\nReference: %s\n", m.data.refPath)
	}
	if note := strings.TrimSpace(m.sess.Scratchpad); note != "" {
		b.WriteString("\nScratchpad\n")
		b.WriteString(note)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *model) copyInfo() tea.Cmd {
	if err := clipboard.Copy(m.infoText()); err != nil {
		return m.errorNotice(err)
	}
	return m.startNotice("Info copied to clipboard", "success", noticeDuration)
}
