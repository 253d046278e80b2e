package dataset

import (
	"math"
	"strconv"
	"strings"
)

var missingTokens = map[string]struct{}{
	"na": {}, "n/a": {}, "nan": {}, "null": {}, "none": {}, "-": {}, "#n/a": {},
}

// parseCell reports the numeric value of a cell. blank is true for empty
// cells and common missing-value markers; those never count against a
// column being numeric.
func parseCell(raw string) (v float64, ok bool, blank bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return math.NaN(), false, true
	}
	if _, miss := missingTokens[strings.ToLower(s)]; miss {
		return math.NaN(), false, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN(), false, false
	}
	return f, true, false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// normalize maps values onto [0, 1]. When the range is empty or not
// finite the whole result is zero.
func normalize(v []float64) []float64 {
	out := make([]float64, len(v))
	lo, hi := math.Inf(1), math.Inf(-1)
	seen := false
	for _, x := range v {
		if math.IsNaN(x) {
			continue
		}
		seen = true
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	if !seen || !isFinite(lo) || !isFinite(hi) || !(hi > lo) {
		return out
	}
	span := hi - lo
	for i, x := range v {
		out[i] = (x - lo) / span
	}
	return out
}
