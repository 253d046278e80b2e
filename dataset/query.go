package dataset

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// NearestIndex returns the row whose TimeSec is closest to sec, preferring
// the earlier row on a tie. It returns -1 for an empty dataset.
func (d *Dataset) NearestIndex(sec float64) int {
	n := len(d.TimeSec)
	if n == 0 {
		return -1
	}
	i := sort.SearchFloat64s(d.TimeSec, sec)
	if i == 0 {
		return 0
	}
	if i == n {
		return n - 1
	}
	if sec-d.TimeSec[i-1] <= d.TimeSec[i]-sec {
		return i - 1
	}
	return i
}

// Frame is a rectangular slice of a Dataset.
type Frame struct {
	TimeNS  []int64
	Columns []string
	// Values[c][r] is column c at row r.
	Values [][]float64
}

func (f Frame) Rows() int { return len(f.TimeNS) }

// Slice returns rows with xmin <= TimeSec <= xmax for the named series.
// Names that are not series are skipped.
func (d *Dataset) Slice(xmin, xmax float64, names []string) Frame {
	lo := sort.SearchFloat64s(d.TimeSec, xmin)
	hi := sort.Search(len(d.TimeSec), func(i int) bool { return d.TimeSec[i] > xmax })
	if hi < lo {
		hi = lo
	}

	f := Frame{TimeNS: append([]int64(nil), d.TimeNS[lo:hi]...)}
	for _, name := range names {
		col, ok := d.Series[name]
		if !ok {
			continue
		}
		f.Columns = append(f.Columns, name)
		f.Values = append(f.Values, append([]float64(nil), col[lo:hi]...))
	}
	return f
}

// Stats summarises the finite samples of one series.
type Stats struct {
	Finite  int
	Nonzero int
	Min     float64
	Max     float64
	MaxAbs  float64
}

func (d *Dataset) Stats(name string) Stats {
	st := Stats{Min: math.NaN(), Max: math.NaN(), MaxAbs: math.NaN()}
	for _, v := range d.Series[name] {
		if !isFinite(v) {
			continue
		}
		if st.Finite == 0 {
			st.Min, st.Max, st.MaxAbs = v, v, math.Abs(v)
		}
		st.Finite++
		if v != 0 {
			st.Nonzero++
		}
		st.Min = math.Min(st.Min, v)
		st.Max = math.Max(st.Max, v)
		st.MaxAbs = math.Max(st.MaxAbs, math.Abs(v))
	}
	return st
}

// Diagnostics renders one line per series, active series first. order
// gives the display order; active reports whether a series is shown.
func (d *Dataset) Diagnostics(order []string, active func(string) bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "points=%d, time_col=%s\n", d.Len(), d.TimeColumn)
	if len(d.Names) == 0 {
		b.WriteString("(no numeric series)")
		return b.String()
	}

	ranked := make([]string, 0, len(order))
	for _, name := range order {
		if active(name) {
			ranked = append(ranked, name)
		}
	}
	for _, name := range order {
		if !active(name) {
			ranked = append(ranked, name)
		}
	}

	for _, name := range ranked {
		flag := "N"
		if active(name) {
			flag = "Y"
		}
		st := d.Stats(name)
		fmt.Fprintf(&b, "\n%-22s active=%s  finite=%6d  nonzero=%6d  min=%.6g  max=%.6g",
			name, flag, st.Finite, st.Nonzero, st.Min, st.Max)
	}
	return b.String()
}
