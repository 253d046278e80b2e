package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// panelRow is one line of a side panel list. Cells may carry ANSI styling;
// widths are measured on what is printed.
type panelRow struct {
	cols []string
}

func newPanelRow(cols ...string) panelRow {
	return panelRow{cols: cols}
}

// String joins the plain cells with tabs, for copying.
func (r panelRow) String() string {
	return strings.Join(r.cols, "\t")
}

// Render lays the cells out on a single line.
func (r panelRow) Render(style lipgloss.Style, colsMeta []ColumnMeta) string {
	var rendered []string
	for i, text := range r.cols {
		if i >= len(colsMeta) {
			break
		}
		w := colsMeta[i].Width
		if w <= 0 {
			continue
		}
		// one blank column separates cells
		text = truncatePlain(text, max(0, w-1))
		rendered = append(rendered, style.Width(w).MaxHeight(1).Render(text))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
