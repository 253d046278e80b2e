package dialogs

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func TestOpenDialogConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		reference bool
	}{
		{"primary", false},
		{"reference", true},
	}
	for _, tt := range tests {
		d := NewOpenDialog("data/run1.csv", tt.reference)
		_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
		msg, ok := runCmd(t, cmd).(OpenConfirmedMsg)
		if !ok {
			t.Fatalf("%s: expected OpenConfirmedMsg", tt.name)
		}
		if msg.Path != "data/run1.csv" || msg.Reference != tt.reference {
			t.Fatalf("%s: got %+v", tt.name, msg)
		}
		if d.IsVisible() {
			t.Fatalf("%s: dialog should hide after confirm", tt.name)
		}
	}
}

func TestOpenDialogEmptyPathStaysOpen(t *testing.T) {
	t.Parallel()

	d := NewOpenDialog("", false)
	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("empty path should not confirm")
	}
	if !d.IsVisible() || !strings.Contains(d.View(), "enter a path") {
		t.Fatal("expected inline error")
	}
}

func TestOpenDialogCancel(t *testing.T) {
	t.Parallel()

	d := NewOpenDialog("x.csv", false)
	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := runCmd(t, cmd).(OpenCanceledMsg); !ok {
		t.Fatal("expected OpenCanceledMsg")
	}
}

func TestExportDialogJoinsLastDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	d := NewExportDialog("run1_visible.csv", dir)
	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := runCmd(t, cmd).(ExportConfirmedMsg)
	if !ok {
		t.Fatal("expected ExportConfirmedMsg")
	}
	if want := filepath.Join(dir, "run1_visible.csv"); msg.Path != want {
		t.Fatalf("path = %q, want %q", msg.Path, want)
	}
}

func TestExportDialogAbsolutePathKept(t *testing.T) {
	t.Parallel()

	abs := filepath.Join(t.TempDir(), "out.csv")
	d := NewExportDialog(abs, "/elsewhere")
	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if msg := runCmd(t, cmd).(ExportConfirmedMsg); msg.Path != abs {
		t.Fatalf("path = %q, want %q", msg.Path, abs)
	}
}

func TestHelpDialogListsBindings(t *testing.T) {
	t.Parallel()

	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "fit view")),
		key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to time range")),
	}
	d := NewHelpDialog(bindings)
	view := d.View()
	for _, want := range []string{"quit", "fit view", "go to time range"} {
		if !strings.Contains(view, want) {
			t.Errorf("help view missing %q", want)
		}
	}

	d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if d.IsVisible() || d.View() != "" {
		t.Fatal("esc should close help")
	}
}
