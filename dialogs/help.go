package dialogs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	helpKeyWidth    = 9
	helpColumnWidth = 36
)

// Help lists key bindings in two columns.
type Help struct {
	visible  bool
	bindings []key.Binding
}

func (d Help) Init() tea.Cmd { return nil }

func NewHelpDialog(bindings []key.Binding) *Help {
	return &Help{
		visible:  true,
		bindings: bindings,
	}
}

func (d *Help) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter", "esc", "?", "q":
			d.visible = false
		}
	}
	return d, nil
}

func helpLine(b key.Binding) string {
	h := b.Help()
	line := fmt.Sprintf("%-*s %s", helpKeyWidth, h.Key, h.Desc)
	if r := []rune(line); len(r) > helpColumnWidth {
		line = string(r[:helpColumnWidth-1]) + "…"
	}
	return line
}

func (d Help) View() string {
	if !d.visible {
		return ""
	}

	half := (len(d.bindings) + 1) / 2
	var left, right []string
	for i, b := range d.bindings {
		if i < half {
			left = append(left, helpLine(b))
		} else {
			right = append(right, helpLine(b))
		}
	}
	col := lipgloss.NewStyle().Width(helpColumnWidth + 2)
	table := lipgloss.JoinHorizontal(lipgloss.Top,
		col.Render(strings.Join(left, "\n")),
		col.Render(strings.Join(right, "\n")),
	)

	width := lipgloss.Width(table)
	title := center(lipgloss.NewStyle().Bold(true).Render("Keys"), width, 1)
	hint := lipgloss.NewStyle().
		Faint(true).
		Render("enter/esc to return")

	content := fmt.Sprintf("%s\n\n%s\n\n%s", title, table, hint)
	return dialogBox.Width(width + 4).Render(content)
}

func (d *Help) Show() {
	d.visible = true
}

func (d *Help) Hide() {
	d.visible = false
}

func (d *Help) Focus() tea.Cmd { return nil }
func (d *Help) Blur()          {}
func (d Help) IsVisible() bool { return d.visible }
