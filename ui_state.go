package main

type sidePanel int

const (
	panelSeries sidePanel = iota
	panelBookmarks
	panelEvents
	panelInfo
)

func (p sidePanel) title() string {
	switch p {
	case panelBookmarks:
		return "Bookmarks"
	case panelEvents:
		return "Events"
	case panelInfo:
		return "Info"
	default:
		return "Series"
	}
}

type uiState struct {
	mode        mode
	command     CommandInput
	panel       sidePanel
	panelCursor int
	noticeMsg   string
	noticeType  string
	noticeSeq   int
	loading     string // path being parsed, empty when idle
	stage       string
	timeWindow  timeWindowUI
	notesOpen   bool
}
