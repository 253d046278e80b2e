package main

import "fmt"

type Command int

const (
	CmdNone Command = iota
	CmdFilter
	CmdRule
	CmdThreshold
	CmdEvent
	CmdBookmark
	CmdRegion
	CmdColor
	CmdTimeColumn
)

type CommandInput struct {
	cmd Command
	buf string
}

func (m *model) commandBadge(cmd Command) string {
	return "[" + commandLabel(cmd) + "]"
}

func (m *model) commandPrompt(cmd Command) string {
	switch cmd {
	case CmdFilter:
		return "filter: "
	case CmdRule:
		return fmt.Sprintf("rule %s: ", m.data.pendingSeries)
	case CmdThreshold:
		return fmt.Sprintf("threshold %s: ", m.data.pendingSeries)
	case CmdEvent:
		return "event: "
	case CmdBookmark:
		return "bookmark: "
	case CmdRegion:
		return "region label: "
	case CmdColor:
		return fmt.Sprintf("color %s: ", m.data.pendingSeries)
	case CmdTimeColumn:
		return "time column: "
	default:
		return ""
	}
}

func (m *model) commandHintsLine(cmd Command) string {
	switch cmd {
	case CmdRule:
		return "gt=N lt=N dp=N (blank clears)   enter: apply   esc: cancel"
	case CmdRegion:
		return "blank label cancels   enter: apply   esc: cancel"
	case CmdBookmark:
		return "blank uses the timestamp   enter: apply   esc: cancel"
	case CmdColor:
		return "#rrggbb   enter: apply   esc: cancel"
	case CmdTimeColumn:
		return "blank restores detection; reloads the file   enter: apply   esc: cancel"
	default:
		return "enter: apply   esc: cancel"
	}
}

func (m *model) idleCommandHintsLine() string {
	return "? help · space toggle · r rule · t threshold · h highlight · e event · b bookmark · g range · x export"
}

// activeCommandLine returns the command prompt text for the footer status line.
func (m *model) activeCommandLine() string {
	badge := m.commandBadge(m.ui.command.cmd)
	prompt := m.commandPrompt(m.ui.command.cmd)
	return badge + " " + prompt + m.ui.command.buf
}

func (m *model) commandRightContext() string {
	if m.sess.Series() == nil {
		return "Active 0/0"
	}
	return fmt.Sprintf("Active %d/%d",
		len(m.sess.Series().Active()),
		len(m.sess.Series().Ordered()),
	)
}
