package dialogs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andareed/siftly-dash/logging"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Messages ---------------------------------------------------------------

type (
	OpenConfirmedMsg struct {
		Path      string
		Reference bool
	}
	OpenCanceledMsg struct{}
)

// Open asks for a data file to load, either as the primary dataset or as
// the comparison reference.
type Open struct {
	input     textinput.Model
	visible   bool
	reference bool
	errMsg    string
}

func (d Open) Init() tea.Cmd { return d.input.Focus() }

func NewOpenDialog(current string, reference bool) *Open {
	ti := textinput.New()
	ti.Prompt = "Open: "
	if reference {
		ti.Prompt = "Reference: "
	}
	ti.Placeholder = "path/to/data.csv"
	ti.CharLimit = 512
	ti.Width = 50
	if current != "" {
		ti.SetValue(current)
	}
	ti.Focus()
	return &Open{input: ti, visible: true, reference: reference}
}

func (d *Open) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter":
			path := expandHome(strings.TrimSpace(d.input.Value()))
			if path == "" {
				d.errMsg = "enter a path"
				return d, nil
			}
			logging.Debugf("OpenDialog: confirmed %q reference=%v", path, d.reference)
			d.Hide()
			ref := d.reference
			return d, func() tea.Msg { return OpenConfirmedMsg{Path: path, Reference: ref} }
		case "esc":
			d.Hide()
			return d, func() tea.Msg { return OpenCanceledMsg{} }
		}
	}
	d.errMsg = ""
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func (d Open) View() string {
	if !d.visible {
		return ""
	}
	title := "Open data file"
	if d.reference {
		title = "Open reference file (compare)"
	}
	help := lipgloss.NewStyle().
		Faint(true).
		Render("enter to load • esc to cancel")

	content := fmt.Sprintf("%s\n\n%s\n\n%s", lipgloss.NewStyle().Bold(true).Render(title), d.input.View(), help)
	if d.errMsg != "" {
		content += "\n" + errorStyle.Render(d.errMsg)
	}
	return dialogBox.Render(content)
}

func (d *Open) Show() {
	d.visible = true
	d.input.Focus()
}

func (d *Open) Hide() {
	d.visible = false
	d.input.Blur()
}

func (d *Open) Focus() tea.Cmd { return d.input.Focus() }
func (d *Open) Blur()          { d.input.Blur() }
func (d Open) IsVisible() bool { return d.visible }
