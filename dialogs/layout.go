package dialogs

import "github.com/charmbracelet/lipgloss"

var (
	dialogBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("252")).
			BorderBackground(lipgloss.Color("236")).
			Padding(1, 2).
			Width(60)

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
)

func center(s string, width, height int) string {
	box := lipgloss.NewStyle().Width(width).Height(height).Align(lipgloss.Center, lipgloss.Center)
	return box.Render(s)
}
