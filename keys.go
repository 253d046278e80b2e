package main

import (
	"github.com/charmbracelet/bubbles/key"
)

type Keymap struct {
	Quit          key.Binding
	OpenHelp      key.Binding
	ScaleLinear   key.Binding
	ScaleLog      key.Binding
	ScaleNorm     key.Binding
	AllOn         key.Binding
	AllOff        key.Binding
	Invert        key.Binding
	Largest       key.Binding
	Toggle        key.Binding
	RowDown       key.Binding
	RowUp         key.Binding
	Filter        key.Binding
	Fit           key.Binding
	ZoomIn        key.Binding
	ZoomOut       key.Binding
	ZoomXIn       key.Binding
	ZoomXOut      key.Binding
	ZoomYIn       key.Binding
	ZoomYOut      key.Binding
	CrossLeft     key.Binding
	CrossRight    key.Binding
	PanLeft       key.Binding
	PanRight      key.Binding
	Downsample    key.Binding
	DownsampleAll key.Binding
	ResetDS       key.Binding
	Rule          key.Binding
	RunRules      key.Binding
	Threshold     key.Binding
	Color         key.Binding
	Highlight     key.Binding
	Click         key.Binding
	AddEvent      key.Binding
	AddBookmark   key.Binding
	Bookmarks     key.Binding
	Events        key.Binding
	NextPanel     key.Binding
	GoToRange     key.Binding
	OpenFile      key.Binding
	Compare       key.Binding
	OpenRef       key.Binding
	TimeColumn    key.Binding
	Markers       key.Binding
	ExportToFile  key.Binding
	CopyInfo      key.Binding
	Scratchpad    key.Binding
	PanelDelete   key.Binding
	PanelBack     key.Binding
}

var Keys = Keymap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	OpenHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help / keys"),
	),
	ScaleLinear: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "linear scale"),
	),
	ScaleLog: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "log scale (|v|)"),
	),
	ScaleNorm: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "normalized scale"),
	),
	AllOn: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("A", "all series on"),
	),
	AllOff: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "all series off"),
	),
	Invert: key.NewBinding(
		key.WithKeys("I"),
		key.WithHelp("I", "invert selection"),
	),
	Largest: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "largest series only"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle series"),
	),
	RowDown: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	RowUp: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter series"),
	),
	Fit: key.NewBinding(
		key.WithKeys("F"),
		key.WithHelp("F", "fit view"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "zoom out"),
	),
	ZoomXIn: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "zoom in (time)"),
	),
	ZoomXOut: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "zoom out (time)"),
	),
	ZoomYIn: key.NewBinding(
		key.WithKeys("}"),
		key.WithHelp("}", "zoom in (value)"),
	),
	ZoomYOut: key.NewBinding(
		key.WithKeys("{"),
		key.WithHelp("{", "zoom out (value)"),
	),
	CrossLeft: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "crosshair to previous sample"),
	),
	CrossRight: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "crosshair to next sample"),
	),
	PanLeft: key.NewBinding(
		key.WithKeys("shift+left"),
		key.WithHelp("shift+←", "pan left"),
	),
	PanRight: key.NewBinding(
		key.WithKeys("shift+right"),
		key.WithHelp("shift+→", "pan right"),
	),
	Downsample: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "downsample series"),
	),
	DownsampleAll: key.NewBinding(
		key.WithKeys("W"),
		key.WithHelp("W", "default downsampling"),
	),
	ResetDS: key.NewBinding(
		key.WithKeys("ctrl+w"),
		key.WithHelp("ctrl+w", "downsampling for all series"),
	),
	Rule: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "edit rule"),
	),
	RunRules: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "run conditions"),
	),
	Threshold: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "add threshold"),
	),
	Color: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "series color"),
	),
	Highlight: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "highlight region"),
	),
	Click: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "click at crosshair"),
	),
	AddEvent: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "add event"),
	),
	AddBookmark: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "add bookmark"),
	),
	Bookmarks: key.NewBinding(
		key.WithKeys("B"),
		key.WithHelp("B", "bookmarks panel"),
	),
	Events: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "events panel"),
	),
	NextPanel: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next side panel"),
	),
	GoToRange: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "go to time range"),
	),
	OpenFile: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open file"),
	),
	Compare: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "compare on/off"),
	),
	OpenRef: key.NewBinding(
		key.WithKeys("O"),
		key.WithHelp("O", "open reference"),
	),
	TimeColumn: key.NewBinding(
		key.WithKeys("T"),
		key.WithHelp("T", "choose time column"),
	),
	Markers: key.NewBinding(
		key.WithKeys("M"),
		key.WithHelp("M", "point markers"),
	),
	ExportToFile: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export visible range"),
	),
	CopyInfo: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy info"),
	),
	Scratchpad: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "scratchpad"),
	),
	PanelDelete: key.NewBinding(
		key.WithKeys("x", "delete"),
		key.WithHelp("x", "delete entry"),
	),
	PanelBack: key.NewBinding(
		key.WithKeys("esc", "tab"),
		key.WithHelp("esc", "back to series"),
	),
}

// Legend is what the help dialog lists.
func (k Keymap) Legend() []key.Binding {
	return []key.Binding{
		k.Quit, k.OpenHelp,
		k.ScaleLinear, k.ScaleLog, k.ScaleNorm,
		k.Toggle, k.AllOn, k.AllOff, k.Invert, k.Largest, k.Filter, k.Color,
		k.Fit, k.ZoomIn, k.ZoomOut, k.ZoomXIn, k.ZoomXOut, k.ZoomYIn, k.ZoomYOut,
		k.CrossLeft, k.CrossRight, k.PanLeft, k.PanRight,
		k.Downsample, k.DownsampleAll, k.ResetDS, k.Markers,
		k.Rule, k.RunRules, k.Threshold,
		k.Highlight, k.Click, k.AddEvent, k.AddBookmark,
		k.Bookmarks, k.Events, k.NextPanel, k.PanelDelete,
		k.GoToRange, k.OpenFile, k.Compare, k.OpenRef, k.TimeColumn,
		k.ExportToFile, k.CopyInfo, k.Scratchpad,
	}
}
