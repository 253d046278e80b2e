package main

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
)

const (
	timeWindowFocusStart = iota
	timeWindowFocusEnd
	timeWindowFocusScrubber
)

// timeWindowSteps is the scrubber's step ladder.
var timeWindowSteps = []time.Duration{
	time.Second,
	5 * time.Second,
	15 * time.Second,
	time.Minute,
	5 * time.Minute,
	15 * time.Minute,
	time.Hour,
	6 * time.Hour,
	24 * time.Hour,
}

const timeWindowStepDefault = 3

type timeWindowUI struct {
	open       bool
	focus      int
	startInput textinput.Model
	endInput   textinput.Model
	errorMsg   string
	draftStart time.Time
	draftEnd   time.Time
	step       int // index into timeWindowSteps
}

func initTimeWindowInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = timeInputLayout
	ti.CharLimit = 32
	ti.Width = len(timeInputLayout)
	ti.Prompt = ""
	return ti
}
