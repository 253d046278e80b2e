package main

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/NimbleMarkets/ntcharts/canvas"
	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/andareed/siftly-dash/session"
	"github.com/andareed/siftly-dash/viewport"
	"github.com/charmbracelet/lipgloss"
)

const (
	chartXSteps = 4
	chartYSteps = 2

	eventRune     = '▼'
	bookmarkRune  = '◆'
	markerRune    = '•'
	thresholdRune = '┈'
)

type chartPoint struct {
	x float64
	y float64
}

// chartInput is everything drawn in one frame.
type chartInput struct {
	Curves     []session.Curve
	References []session.Curve
	Overlays   session.Overlays
	View       viewport.Rect
	Crosshair  float64
	Anchor     *float64 // first highlight click, if armed for the second
	Location   *time.Location
	Markers    bool
}

// chartLayout is where the plot area ended up, for mouse mapping.
type chartLayout struct {
	originX    int
	graphWidth int
	graphRows  int
}

func renderChart(in chartInput, w, h int) (string, chartLayout) {
	if w < 10 || h < 4 {
		return "", chartLayout{}
	}
	x, y := in.View.X, in.View.Y
	minT, maxT := secToTime(x.Min), secToTime(x.Max)

	c := tslc.New(w, h,
		tslc.WithXYSteps(chartXSteps, chartYSteps),
		tslc.WithXLabelFormatter(timeLabelFormatter(x, in.Location)),
		tslc.WithYLabelFormatter(valueLabelFormatter()),
		tslc.WithAxesStyles(chartAxisStyle, chartLabelStyle),
		tslc.WithTimeRange(minT, maxT),
		tslc.WithYRange(y.Min, y.Max),
	)
	c.AutoMinX, c.AutoMaxX, c.AutoMinY, c.AutoMaxY = false, false, false, false
	c.SetViewTimeAndYRange(minT, maxT, y.Min, y.Max)

	buckets := c.GraphWidth()
	pushed := false
	var markers []chartPoint
	var markerStyles []lipgloss.Style

	push := func(prefix string, k int, cv session.Curve) {
		b := 0
		if cv.Downsample {
			b = buckets
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(cv.Style.Color))
		if cv.Reference {
			style = style.Faint(true)
		}
		segs := visibleSegments(cv.X, cv.Y, x, b)
		count := 0
		for j, seg := range segs {
			name := fmt.Sprintf("%s%03d:%s#%d", prefix, k, cv.Name, j)
			c.SetDataSetStyle(name, style)
			for _, p := range seg {
				c.PushDataSet(name, tslc.TimePoint{Time: secToTime(p.x), Value: p.y})
				pushed = true
			}
			count += len(seg)
		}
		if in.Markers && !cv.Reference && count <= c.GraphWidth() {
			for _, seg := range segs {
				for _, p := range seg {
					markers = append(markers, p)
					markerStyles = append(markerStyles, style)
				}
			}
		}
	}
	// Names sort references underneath the primary curves.
	for k, cv := range in.References {
		push("a", k, cv)
	}
	for k, cv := range in.Curves {
		push("b", k, cv)
	}

	if pushed {
		c.DrawBrailleAll()
	} else {
		c.DrawXYAxisAndLabel()
	}

	for i, p := range markers {
		if x.Contains(p.x) && y.Contains(p.y) {
			c.DrawRuneWithStyle(canvas.Float64Point{X: p.x, Y: p.y}, markerRune, markerStyles[i])
		}
	}

	step := x.Span() / float64(max(1, c.GraphWidth()))
	for _, band := range in.Overlays.Regions {
		lo, hi := math.Max(band.Start, x.Min), math.Min(band.End, x.Max)
		for t := lo; t <= hi; t += step {
			c.SetColumnBackgroundStyle(secToTime(t), chartRegionStyle)
		}
	}
	if in.Anchor != nil && x.Contains(*in.Anchor) {
		c.SetColumnBackgroundStyle(secToTime(*in.Anchor), chartAnchorStyle)
	}
	if x.Contains(in.Crosshair) {
		c.SetColumnBackgroundStyle(secToTime(in.Crosshair), chartCrosshairStyle)
	}

	for _, th := range in.Overlays.Thresholds {
		if !y.Contains(th.Value) {
			continue
		}
		st := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Color))
		c.DrawRuneLineWithStyle(
			canvas.Float64Point{X: x.Min, Y: th.Value},
			canvas.Float64Point{X: x.Max, Y: th.Value},
			thresholdRune, st)
	}
	for _, ev := range in.Overlays.Events {
		if !x.Contains(ev.At) {
			continue
		}
		st := chartManualEventStyle
		if ev.Rule {
			st = chartRuleEventStyle
		}
		c.DrawRuneWithStyle(canvas.Float64Point{X: ev.At, Y: y.Max}, eventRune, st)
	}
	for _, bm := range in.Overlays.Bookmarks {
		if x.Contains(bm.At) {
			c.DrawRuneWithStyle(canvas.Float64Point{X: bm.At, Y: y.Max}, bookmarkRune, chartBookmarkStyle)
		}
	}

	return c.View(), chartLayout{
		originX:    c.Origin().X,
		graphWidth: c.GraphWidth(),
		graphRows:  c.GraphHeight(),
	}
}

// visibleSegments clips a curve to x, keeping one sample either side so
// lines reach the plot edge, and splits it at missing samples. With
// buckets > 0 each segment is reduced to its min/max per bucket.
func visibleSegments(xs, ys []float64, x viewport.Range, buckets int) [][]chartPoint {
	n := min(len(xs), len(ys))
	lo := max(0, sort.SearchFloat64s(xs[:n], x.Min)-1)
	hi := min(n, sort.SearchFloat64s(xs[:n], x.Max)+1)

	var segs [][]chartPoint
	var cur []chartPoint
	for i := lo; i < hi; i++ {
		if math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			if len(cur) > 0 {
				segs = append(segs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, chartPoint{x: xs[i], y: ys[i]})
	}
	if len(cur) > 0 {
		segs = append(segs, cur)
	}
	if buckets > 0 {
		for i, s := range segs {
			segs[i] = minMaxDecimate(s, x, buckets)
		}
	}
	return segs
}

// minMaxDecimate keeps the lowest and highest sample of every bucket in
// time order. Points must be sorted by x.
func minMaxDecimate(pts []chartPoint, x viewport.Range, buckets int) []chartPoint {
	if len(pts) <= 2*buckets || x.Span() <= 0 {
		return pts
	}
	width := x.Span() / float64(buckets)
	bucket := func(v float64) int { return int(math.Floor((v - x.Min) / width)) }

	out := make([]chartPoint, 0, 2*buckets+4)
	for start := 0; start < len(pts); {
		b := bucket(pts[start].x)
		lo, hi, end := start, start, start
		for end < len(pts) && bucket(pts[end].x) == b {
			if pts[end].y < pts[lo].y {
				lo = end
			}
			if pts[end].y > pts[hi].y {
				hi = end
			}
			end++
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		out = append(out, pts[lo])
		if hi != lo {
			out = append(out, pts[hi])
		}
		start = end
	}
	return out
}

// columnToSec maps a terminal column, relative to the chart's left edge,
// to a time inside x.
func columnToSec(col int, layout chartLayout, x viewport.Range) (float64, bool) {
	rel := col - layout.originX - 1
	if layout.graphWidth <= 1 || rel < 0 || rel >= layout.graphWidth {
		return 0, false
	}
	return x.Min + float64(rel)/float64(layout.graphWidth-1)*x.Span(), true
}

func timeLabelFormatter(x viewport.Range, loc *time.Location) func(int, float64) string {
	layout := "15:04:05"
	switch span := x.Span(); {
	case span > 7*24*3600:
		layout = "2006-01-02"
	case span > 24*3600:
		layout = "01/02 15:04"
	}
	return func(_ int, v float64) string {
		return secToTime(v).In(loc).Format(layout)
	}
}

func valueLabelFormatter() func(int, float64) string {
	return func(_ int, v float64) string {
		return strconv.FormatFloat(v, 'g', 4, 64)
	}
}

func secToTime(sec float64) time.Time {
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC()
}
