package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
)

type FooterState struct {
	Mode      string
	ModeInput string

	FileName string

	Scale      string
	Downsample bool
	Compare    string

	Active int
	Total  int

	StatusMessage string
	Legend        string
}

type FooterStyles struct {
	BarBG      lipgloss.Color
	StatusBG   lipgloss.Color
	ModePillBG lipgloss.Color
	ModePillFG lipgloss.Color
	FileNameFG lipgloss.Color
	TextFG     lipgloss.Color
	DimFG      lipgloss.Color
	StatusFG   lipgloss.Color
	LegendFG   lipgloss.Color
}

func DefaultFooterStyles() FooterStyles {
	return FooterStyles{
		BarBG:      lipgloss.Color("#2b2b2b"),
		StatusBG:   lipgloss.Color("#000000"),
		ModePillBG: lipgloss.Color("#ff9f1c"),
		ModePillFG: lipgloss.Color("#000000"),
		FileNameFG: lipgloss.Color("#e0e0e0"),
		TextFG:     lipgloss.Color("#cfcfcf"),
		DimFG:      lipgloss.Color("#a0a0a0"),
		StatusFG:   lipgloss.Color("#9a9a9a"),
		LegendFG:   lipgloss.Color("#b0b0b0"),
	}
}

// footerProfile is fixed so the footer renders the same in tests and in
// terminals that lipgloss would otherwise downgrade.
var footerProfile = termenv.TrueColor

func RenderFooter(width int, st FooterState, styles FooterStyles) string {
	if width <= 0 {
		return ""
	}
	if st.Mode == "" {
		st.Mode = commandLabel(CmdNone)
	}
	if st.Scale == "" {
		st.Scale = "linear"
	}
	if st.Compare == "" {
		st.Compare = "off"
	}
	if st.Legend == "" {
		st.Legend = "(? help · / filter · g range)"
	}
	st.Active = max(0, st.Active)
	st.Total = max(0, st.Total)

	line1 := renderControlBar(width, st, styles)
	line2 := renderStatusBar(width, st, styles)
	return line1 + "\n" + line2
}

func statusFlags(st FooterState) string {
	return fmt.Sprintf("[SCALE: %s] · [DS: %s] · [CMP: %s]", st.Scale, onOff(st.Downsample), st.Compare)
}

func renderControlBar(width int, st FooterState, styles FooterStyles) string {
	const gapW = 1

	rightPlain := truncatePlain(fmt.Sprintf(" Active %d/%d", st.Active, st.Total), width)
	leftW := max(0, width-runeWidth(rightPlain))

	modeColW := min(runeWidth(st.Mode)+2, max(0, leftW/4))
	flagsPlain := statusFlags(st)
	flagsColW := min(runeWidth(flagsPlain), max(0, leftW-modeColW-2*gapW-10))
	fileColW := max(0, leftW-modeColW-flagsColW-2*gapW)

	modeSeg := renderModeSegment(modeColW, st, styles)
	fileSeg := renderFileSegment(fileColW, st, styles)
	flagsSeg := colorize(padRightPlain(truncatePlain(flagsPlain, flagsColW), flagsColW), styles.DimFG, "")

	left := modeSeg + strings.Repeat(" ", gapW) + fileSeg + strings.Repeat(" ", gapW) + flagsSeg
	if used := modeColW + fileColW + flagsColW + 2*gapW; used < leftW {
		left += colorize(strings.Repeat(" ", leftW-used), styles.TextFG, styles.BarBG)
	}

	return colorize(left+colorize(rightPlain, styles.TextFG, ""), styles.TextFG, styles.BarBG)
}

func renderStatusBar(width int, st FooterState, styles FooterStyles) string {
	legendPlain := truncatePlain(st.Legend, width)
	leftW := max(0, width-runeWidth(legendPlain))
	msgPlain := padRightPlain(truncatePlain(st.StatusMessage, leftW), leftW)

	line := colorize(msgPlain, styles.StatusFG, "") + colorize(legendPlain, styles.LegendFG, "")
	return colorize(line, styles.StatusFG, styles.StatusBG)
}

func renderModeSegment(colW int, st FooterState, styles FooterStyles) string {
	if colW <= 0 {
		return ""
	}
	pill := truncatePlain(" "+truncatePlain(st.Mode, max(0, colW-2))+" ", colW)
	return colorize(padRightPlain(pill, colW), styles.ModePillFG, styles.ModePillBG)
}

func renderFileSegment(colW int, st FooterState, styles FooterStyles) string {
	if colW <= 0 {
		return ""
	}
	name := strings.TrimSpace(st.FileName)
	if name == "" {
		name = "(no file)"
	}
	filePlain := truncatePlain("▸ "+name, colW)
	remaining := colW - runeWidth(filePlain)

	inputPlain := ""
	if input := strings.TrimSpace(st.ModeInput); input != "" && remaining > 0 {
		inputPlain = truncatePlain(" ▸ "+input, remaining)
		remaining -= runeWidth(inputPlain)
	}
	return colorize(filePlain, styles.FileNameFG, "") + inputPlain + strings.Repeat(" ", max(0, remaining))
}

func commandLabel(cmd Command) string {
	switch cmd {
	case CmdFilter:
		return "FILTER"
	case CmdRule:
		return "RULE"
	case CmdThreshold:
		return "THRESHOLD"
	case CmdEvent:
		return "EVENT"
	case CmdBookmark:
		return "BOOKMARK"
	case CmdRegion:
		return "REGION"
	case CmdColor:
		return "COLOR"
	case CmdTimeColumn:
		return "TIMECOL"
	default:
		return "NORMAL"
	}
}

// colorize wraps s in true-colour escapes; an empty colour leaves that
// channel untouched.
func colorize(s string, fg, bg lipgloss.Color) string {
	out := termenv.String(s)
	if fg != "" {
		out = out.Foreground(footerProfile.Color(string(fg)))
	}
	if bg != "" {
		out = out.Background(footerProfile.Color(string(bg)))
	}
	return out.String()
}

func padRightPlain(s string, w int) string {
	if w <= 0 {
		return ""
	}
	cur := runeWidth(s)
	if cur >= w {
		return s
	}
	return s + strings.Repeat(" ", w-cur)
}

func truncatePlain(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return truncate.String(s, uint(w))
}

func runeWidth(s string) int {
	return ansi.PrintableRuneWidth(s)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
