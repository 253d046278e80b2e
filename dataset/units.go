package dataset

import "strings"

var unitHints = []struct{ key, unit string }{
	{"_temp", "°C"}, {"temperature", "°C"},
	{"_volt", "V"}, {"voltage", "V"},
	{"_curr", "A"}, {"current", "A"},
	{"_press", "Pa"}, {"pressure", "Pa"},
	{"_flow", "sccm"}, {"flow", "sccm"},
	{"_rpm", "rpm"},
	{"_freq", "Hz"}, {"frequency", "Hz"},
	{"_power", "W"}, {"power", "W"},
	{"_hum", "%"}, {"humidity", "%"},
}

// UnitFromName guesses a display unit from a series name, or "".
func UnitFromName(name string) string {
	n := strings.ToLower(name)
	for _, h := range unitHints {
		if strings.Contains(n, h.key) {
			return h.unit
		}
	}
	return ""
}

// AxisLabel picks the value-axis caption for the given visible series.
func AxisLabel(visible []string, normalized bool) string {
	if normalized {
		return "Normalized"
	}
	if len(visible) == 0 {
		return "Y"
	}
	unit := UnitFromName(visible[0])
	for _, name := range visible[1:] {
		if UnitFromName(name) != unit {
			return "Mixed"
		}
	}
	if unit == "" {
		return "Value"
	}
	return unit
}
