// Package viewport computes view rectangles: anchored zoom, auto-fit and
// jump-to windows. Everything here is a pure function of its inputs.
package viewport

import (
	"errors"
	"fmt"
	"math"
)

const (
	ZoomIn  = 0.9
	ZoomOut = 1 / 0.9

	// Padding is the fraction of each span added on both sides by fits.
	Padding = 0.02
	// LogFloor keeps the lower Y bound positive in log mode.
	LogFloor = 1e-12
	// JumpHalfWidth is the half-width, in seconds, of a bookmark jump.
	JumpHalfWidth = 5.0

	minXSpan = 1.0
	minYSpan = 1e-6
)

type Range struct {
	Min float64
	Max float64
}

func (r Range) Span() float64 { return r.Max - r.Min }

func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

func (r Range) pad(frac float64) Range {
	p := r.Span() * frac
	return Range{Min: r.Min - p, Max: r.Max + p}
}

// widen grows a degenerate range to at least span, centred.
func (r Range) widen(span float64) Range {
	if r.Span() >= span {
		return r
	}
	mid := (r.Min + r.Max) / 2
	return Range{Min: mid - span/2, Max: mid + span/2}
}

type Rect struct {
	X Range
	Y Range
}

type Point struct {
	X float64
	Y float64
}

type AxisMask int

const (
	AxisX AxisMask = 1 << iota
	AxisY
	AxisXY = AxisX | AxisY
)

func (m AxisMask) String() string {
	switch m {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisXY:
		return "XY"
	default:
		return "none"
	}
}

// ZoomRange scales r about anchor: lo' = a-(a-lo)*f, hi' = a+(hi-a)*f.
func ZoomRange(r Range, anchor, factor float64) Range {
	return Range{
		Min: anchor - (anchor-r.Min)*factor,
		Max: anchor + (r.Max-anchor)*factor,
	}
}

// Zoom scales the masked axes of rect about anchor.
func Zoom(rect Rect, anchor Point, factor float64, mask AxisMask) Rect {
	if mask&AxisX != 0 {
		rect.X = ZoomRange(rect.X, anchor.X, factor)
	}
	if mask&AxisY != 0 {
		rect.Y = ZoomRange(rect.Y, anchor.Y, factor)
	}
	return rect
}

// Center is the midpoint of rect, the keyboard zoom anchor.
func (r Rect) Center() Point {
	return Point{X: (r.X.Min + r.X.Max) / 2, Y: (r.Y.Min + r.Y.Max) / 2}
}

// Pan shifts the masked axes by frac of their span.
func Pan(rect Rect, frac float64, mask AxisMask) Rect {
	if mask&AxisX != 0 {
		d := rect.X.Span() * frac
		rect.X = Range{Min: rect.X.Min + d, Max: rect.X.Max + d}
	}
	if mask&AxisY != 0 {
		d := rect.Y.Span() * frac
		rect.Y = Range{Min: rect.Y.Min + d, Max: rect.Y.Max + d}
	}
	return rect
}

// Curve is one series as plotted: shared x values and display y values.
type Curve struct {
	X []float64
	Y []float64
}

// AutoFit returns the tightest box around every finite sample of curves,
// padded by Padding per axis. It reports false when there is nothing to fit.
func AutoFit(curves []Curve, mode ScaleMode) (Rect, bool) {
	x := Range{Min: math.Inf(1), Max: math.Inf(-1)}
	y := x
	seen := false
	for _, c := range curves {
		n := min(len(c.X), len(c.Y))
		for i := 0; i < n; i++ {
			xv, yv := c.X[i], c.Y[i]
			if !finite(xv) || !finite(yv) {
				continue
			}
			seen = true
			x.Min, x.Max = math.Min(x.Min, xv), math.Max(x.Max, xv)
			y.Min, y.Max = math.Min(y.Min, yv), math.Max(y.Max, yv)
		}
	}
	if !seen {
		return Rect{}, false
	}

	out := Rect{
		X: x.widen(minXSpan).pad(Padding),
		Y: y.widen(minYSpan).pad(Padding),
	}
	if mode == Log && out.Y.Min < LogFloor {
		out.Y.Min = LogFloor
	}
	return out, true
}

// CenterOn is the X window used when jumping to a bookmark or event.
func CenterOn(sec float64) Range {
	return Range{Min: sec - JumpHalfWidth, Max: sec + JumpHalfWidth}.pad(Padding)
}

// RangeError rejects a manual range whose start is not before its end.
type RangeError struct {
	Start float64
	End   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range: start %.3f must be before end %.3f", e.Start, e.End)
}

// ErrRange matches any *RangeError with errors.Is.
var ErrRange = errors.New("invalid range")

func (e *RangeError) Is(target error) bool { return target == ErrRange }

// GoTo validates [start, end], clamps it to bounds and pads it. A range
// that collapses after clamping is widened to one second.
func GoTo(start, end float64, bounds Range) (Range, error) {
	if !(start < end) {
		return Range{}, &RangeError{Start: start, End: end}
	}
	s := math.Max(start, bounds.Min)
	e := math.Min(end, bounds.Max)
	if e <= s {
		e = s + minXSpan
	}
	return Range{Min: s, Max: e}.pad(Padding), nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
