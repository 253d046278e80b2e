package dialogs

import tea "github.com/charmbracelet/bubbletea"

// Dialog is the common interface of the modal prompts (open, export, help).
type Dialog interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Dialog, tea.Cmd)
	View() string

	Focus() tea.Cmd
	Blur()
	IsVisible() bool
	Show()
	Hide()
}
