package main

import "github.com/charmbracelet/lipgloss"

const (
	panelTextFGColor         = "#c0c0c0"
	panelSelectedTextFGColor = "#e0e0e0"
	panelSelectedBGColor     = "#3a3a3a"
	panelDimFGColor          = "#707070"
	crosshairBGColor         = "#44475a"
	regionBGColor            = "#2f3f2f"
	anchorBGColor            = "#5f3f00"
)

var (
	appstyle = lipgloss.NewStyle().Margin(0, 1)

	chartFrameStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	chartTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	chartAxisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	chartLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	chartCrosshairStyle   = lipgloss.NewStyle().Background(lipgloss.Color(crosshairBGColor))
	chartRegionStyle      = lipgloss.NewStyle().Background(lipgloss.Color(regionBGColor))
	chartAnchorStyle      = lipgloss.NewStyle().Background(lipgloss.Color(anchorBGColor))
	chartRuleEventStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9f1c"))
	chartManualEventStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4fc3f7"))
	chartBookmarkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f5c542"))

	// Side panel
	panelStyle         = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	panelFocusStyle    = panelStyle.BorderForeground(lipgloss.Color("#ff9f1c"))
	panelTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	panelRowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(panelTextFGColor))
	panelSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(panelSelectedTextFGColor)).
				Background(lipgloss.Color(panelSelectedBGColor))
	panelDimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(panelDimFGColor))
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)

	activeMarker   = "●"
	inactiveMarker = "○"
	ruleMarker     = "⚑"
	dsMarker       = "≈"

	drawerArea = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 0).BorderLeft(true)
)

// seriesSwatch renders a colour chip for a series row.
func seriesSwatch(hex string, active bool) string {
	glyph := inactiveMarker
	if active {
		glyph = activeMarker
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(glyph)
}
