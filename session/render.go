package session

import (
	"fmt"
	"math"
	"strings"

	"github.com/andareed/siftly-dash/dataset"
	"github.com/andareed/siftly-dash/events"
	"github.com/andareed/siftly-dash/series"
	"github.com/andareed/siftly-dash/viewport"
)

const (
	readoutLimit   = 5
	referenceColor = "#9e9e9e"
)

// Curve is everything a renderer needs to draw one series.
type Curve struct {
	Name       string
	X          []float64
	Y          []float64
	Style      series.Style
	Downsample bool
	Reference  bool
}

func display(ds *dataset.Dataset, name string, mode viewport.ScaleMode) []float64 {
	switch mode {
	case viewport.Log:
		return viewport.LogValues(ds.Series[name])
	case viewport.Normalize:
		return ds.Normalized[name]
	default:
		return ds.Series[name]
	}
}

// Curves returns the active series in the current scale, in rank order.
func (s *Session) Curves() []Curve {
	if s.ds == nil {
		return nil
	}
	var out []Curve
	for _, name := range s.series.Active() {
		st, _ := s.series.State(name)
		out = append(out, Curve{
			Name:       name,
			X:          s.ds.TimeSec,
			Y:          display(s.ds, name, s.scale),
			Style:      st.Style,
			Downsample: s.series.Downsample(name),
		})
	}
	return out
}

// ReferenceCurves returns comparison overlays for active shared series.
func (s *Session) ReferenceCurves() []Curve {
	if s.cmp == nil || s.ds == nil {
		return nil
	}
	var out []Curve
	for _, name := range s.series.Active() {
		if !s.cmp.Shares(name) {
			continue
		}
		st, _ := s.series.State(name)
		out = append(out, Curve{
			Name:       name,
			X:          s.cmp.Dataset.TimeSec,
			Y:          display(s.cmp.Dataset, name, s.scale),
			Style:      series.Style{Color: referenceColor, Width: st.Style.Width, Dashed: true},
			Downsample: s.series.Downsample(name),
			Reference:  true,
		})
	}
	return out
}

// Fit is the auto-fit rectangle over the active series.
func (s *Session) Fit() (viewport.Rect, bool) {
	curves := s.Curves()
	in := make([]viewport.Curve, len(curves))
	for i, c := range curves {
		in[i] = viewport.Curve{X: c.X, Y: c.Y}
	}
	return viewport.AutoFit(in, s.scale)
}

// Overlays are annotation primitives in plot seconds.
type Overlays struct {
	Thresholds []ThresholdLine
	Regions    []Band
	Events     []Marker
	Bookmarks  []Marker
}

type ThresholdLine struct {
	ID     string
	Series string
	Value  float64
	Color  string
}

type Band struct {
	ID    string
	Start float64
	End   float64
	Label string
}

type Marker struct {
	ID    string
	At    float64
	Label string
	Rule  bool
}

// Overlays lists every annotation. Thresholds of inactive series are
// left out, and threshold values follow the current scale.
func (s *Session) Overlays() Overlays {
	var ov Overlays
	if s.series != nil {
		for _, th := range s.notes.Thresholds() {
			if !s.series.IsActive(th.Series) {
				continue
			}
			st, _ := s.series.State(th.Series)
			v, ok := s.scaleValue(th.Series, th.Value)
			if !ok {
				continue
			}
			ov.Thresholds = append(ov.Thresholds, ThresholdLine{ID: th.ID, Series: th.Series, Value: v, Color: st.Style.Color})
		}
	}
	for _, r := range s.notes.Regions() {
		ov.Regions = append(ov.Regions, Band{ID: r.ID, Start: nsToSec(r.StartNS), End: nsToSec(r.EndNS), Label: r.Label})
	}
	for _, h := range s.notes.Events() {
		ov.Events = append(ov.Events, Marker{ID: h.ID, At: nsToSec(h.TimeNS), Label: h.Label, Rule: h.Origin == events.OriginRule})
	}
	for _, b := range s.notes.Bookmarks() {
		ov.Bookmarks = append(ov.Bookmarks, Marker{ID: b.ID, At: nsToSec(b.TimeNS), Label: b.Label})
	}
	return ov
}

// scaleValue maps a raw threshold into display units.
func (s *Session) scaleValue(name string, v float64) (float64, bool) {
	switch s.scale {
	case viewport.Log:
		if v == 0 || math.IsNaN(v) {
			return 0, false
		}
		return math.Abs(v), true
	case viewport.Normalize:
		st := s.ds.Stats(name)
		if st.Finite == 0 || !(st.Max > st.Min) {
			return 0, false
		}
		return (v - st.Min) / (st.Max - st.Min), true
	default:
		return v, true
	}
}

// Readout describes the row nearest sec for a hover or crosshair status.
func (s *Session) Readout(sec float64) string {
	i := s.NearestIndex(sec)
	if i < 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(s.ds.Time(i).Format("2006-01-02 15:04:05.000 MST"))
	for k, name := range s.series.Active() {
		if k == readoutLimit {
			b.WriteString("  …")
			break
		}
		v := s.ds.Series[name][i]
		val := "nan"
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			val = fmt.Sprintf("%.6g", v)
			if u := dataset.UnitFromName(name); u != "" {
				val += " " + u
			}
		}
		fmt.Fprintf(&b, "  %s=%s", name, val)
	}
	return b.String()
}

func nsToSec(ns int64) float64 { return float64(ns) / 1e9 }
