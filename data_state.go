package main

import (
	"github.com/andareed/siftly-dash/annotate"
	"github.com/andareed/siftly-dash/viewport"
)

// dataState is the shell's view onto the session: what is on screen and
// which series the list cursor points at.
type dataState struct {
	path    string
	refPath string

	view      viewport.Rect
	hasView   bool
	crosshair float64
	hover     float64
	hasHover  bool
	layout    chartLayout
	// screen position of the chart's top-left cell, for mouse mapping
	chartLeft int
	chartTop  int

	listCursor int
	filter     string
	listed     []string // series shown in the side panel, rank order

	// context captured when a prompt opens
	pendingSeries string
	pendingSec    float64
	pendingSpan   annotate.Span
}
