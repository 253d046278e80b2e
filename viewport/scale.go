package viewport

import "math"

// ScaleMode selects how series values are displayed.
type ScaleMode int

const (
	Linear ScaleMode = iota
	Log
	Normalize
)

func (m ScaleMode) String() string {
	switch m {
	case Log:
		return "log"
	case Normalize:
		return "normalize"
	default:
		return "linear"
	}
}

// ParseScaleMode accepts the names String produces; anything else is
// Linear.
func ParseScaleMode(s string) ScaleMode {
	switch s {
	case "log":
		return Log
	case "normalize", "normalized":
		return Normalize
	default:
		return Linear
	}
}

// LogValues maps values to |v| for log display; zero and non-finite
// samples become NaN so they are skipped rather than plotted at -Inf.
func LogValues(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if finite(v) && v != 0 {
			out[i] = math.Abs(v)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}
