package main

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestLayoutColumnsFillsWidth(t *testing.T) {
	t.Parallel()

	for _, width := range []int{20, 33, 40, 57} {
		cols := layoutColumns(seriesColumns(), width)
		sum := 0
		for _, c := range cols {
			if c.Width < c.MinWidth {
				t.Errorf("width %d: column %q below minimum", width, c.Name)
			}
			sum += c.Width
		}
		if sum != width {
			t.Errorf("width %d: columns sum to %d", width, sum)
		}
		if cols[1].Width <= cols[2].Width {
			t.Errorf("width %d: name column should be widest", width)
		}
	}
}

func TestLayoutColumnsTooNarrow(t *testing.T) {
	t.Parallel()

	cols := layoutColumns(seriesColumns(), 10)
	sum := 0
	for _, c := range cols {
		sum += c.Width
	}
	if sum > 10 {
		t.Fatalf("columns overflow: %d", sum)
	}
}

func TestPanelRowRender(t *testing.T) {
	t.Parallel()

	cols := layoutColumns(seriesColumns(), 30)
	row := newPanelRow("●", "a_very_long_series_name_indeed", "12.5", "⚑")
	out := row.Render(lipgloss.NewStyle(), cols)
	if w := lipgloss.Width(out); w != 30 {
		t.Fatalf("row width %d, want 30", w)
	}
	if strings.Contains(out, "\n") {
		t.Fatal("row wrapped")
	}
	if row.String() != "●\ta_very_long_series_name_indeed\t12.5\t⚑" {
		t.Fatalf("String() = %q", row.String())
	}
}

func TestWindowAround(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cursor, n, h   int
		wantLo, wantHi int
	}{
		{0, 5, 10, 0, 5},
		{50, 100, 10, 45, 55},
		{99, 100, 10, 90, 100},
		{0, 0, 10, 0, 0},
	}
	for _, tt := range tests {
		lo, hi := windowAround(tt.cursor, tt.n, tt.h)
		if lo != tt.wantLo || hi != tt.wantHi {
			t.Errorf("windowAround(%d,%d,%d) = %d,%d want %d,%d", tt.cursor, tt.n, tt.h, lo, hi, tt.wantLo, tt.wantHi)
		}
	}
}
