package main

type ColumnRole int

const (
	RoleNormal  ColumnRole = iota
	RolePrimary            // series name
	RoleSecondary
)

// ColumnMeta sizes one column of a side panel list.
type ColumnMeta struct {
	Name     string
	Role     ColumnRole
	MinWidth int
	Weight   float64
	Width    int
}

func newColumn(name string, role ColumnRole) ColumnMeta {
	return ColumnMeta{
		Name:     name,
		Role:     role,
		MinWidth: defaultMinWidthForRole(role),
		Weight:   defaultWeightForRole(role),
	}
}

func defaultMinWidthForRole(r ColumnRole) int {
	switch r {
	case RolePrimary:
		return 8
	case RoleSecondary:
		return 6
	default:
		return 2
	}
}

func defaultWeightForRole(r ColumnRole) float64 {
	switch r {
	case RolePrimary:
		return 3.0
	case RoleSecondary:
		return 1.0
	default:
		return 0
	}
}

// seriesColumns are swatch, name, value at the crosshair and flags.
func seriesColumns() []ColumnMeta {
	return []ColumnMeta{
		newColumn("", RoleNormal),
		newColumn("Series", RolePrimary),
		newColumn("Value", RoleSecondary),
		newColumn("", RoleNormal),
	}
}

// entryColumns are time and label for the bookmark and event lists.
func entryColumns() []ColumnMeta {
	return []ColumnMeta{
		{Name: "Time", Role: RoleSecondary, MinWidth: 8},
		newColumn("", RoleNormal),
		newColumn("Label", RolePrimary),
	}
}

// layoutColumns gives every column its minimum and shares what is left by
// weight. Rounding leftovers go to the widest-weighted column.
func layoutColumns(cols []ColumnMeta, totalWidth int) []ColumnMeta {
	if totalWidth <= 0 {
		return cols
	}

	minSum := 0
	weightSum := 0.0
	heaviest := -1
	for i := range cols {
		minSum += cols[i].MinWidth
		weightSum += cols[i].Weight
		if heaviest < 0 || cols[i].Weight > cols[heaviest].Weight {
			heaviest = i
		}
	}

	if minSum >= totalWidth {
		left := totalWidth
		for i := range cols {
			cols[i].Width = min(cols[i].MinWidth, left)
			left -= cols[i].Width
		}
		return cols
	}

	remaining := totalWidth - minSum
	used := 0
	for i := range cols {
		extra := 0
		if weightSum > 0 {
			extra = int(float64(remaining) * (cols[i].Weight / weightSum))
		}
		cols[i].Width = cols[i].MinWidth + extra
		used += cols[i].Width
	}
	if heaviest >= 0 && used < totalWidth {
		cols[heaviest].Width += totalWidth - used
	}
	return cols
}
