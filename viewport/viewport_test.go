package viewport

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestZoomAnchored(t *testing.T) {
	t.Parallel()
	rect := Rect{X: Range{0, 100}, Y: Range{-10, 10}}
	anchor := Point{X: 25, Y: 0}

	got := Zoom(rect, anchor, ZoomIn, AxisX)
	if !near(got.X.Min, 2.5) || !near(got.X.Max, 92.5) {
		t.Errorf("X = %+v, want {2.5 92.5}", got.X)
	}
	if got.Y != rect.Y {
		t.Errorf("Y changed under X-only mask: %+v", got.Y)
	}

	back := Zoom(got, anchor, ZoomOut, AxisX)
	if !near(back.X.Min, 0) || !near(back.X.Max, 100) {
		t.Errorf("zoom in/out round trip = %+v", back.X)
	}

	yOnly := Zoom(rect, anchor, ZoomIn, AxisY)
	if yOnly.X != rect.X || !near(yOnly.Y.Min, -9) || !near(yOnly.Y.Max, 9) {
		t.Errorf("Y-only zoom = %+v", yOnly)
	}
}

func TestAutoFitPadding(t *testing.T) {
	t.Parallel()
	curves := []Curve{
		{X: []float64{0, 500, 1000}, Y: []float64{-3, 2, math.NaN()}},
		{X: []float64{0, 500, 1000}, Y: []float64{0, 7, 1}},
	}
	r, ok := AutoFit(curves, Linear)
	if !ok {
		t.Fatal("AutoFit found nothing")
	}
	if !near(r.Y.Min, -3.2) || !near(r.Y.Max, 7.2) {
		t.Errorf("Y = %+v, want {-3.2 7.2}", r.Y)
	}
	if !near(r.X.Min, -20) || !near(r.X.Max, 1020) {
		t.Errorf("X = %+v, want {-20 1020}", r.X)
	}

	if _, ok := AutoFit([]Curve{{X: []float64{1}, Y: []float64{math.NaN()}}}, Linear); ok {
		t.Error("AutoFit succeeded without finite samples")
	}
}

func TestAutoFitLogFloorAndDegenerate(t *testing.T) {
	t.Parallel()
	curves := []Curve{{X: []float64{0, 10}, Y: LogValues([]float64{0, 1e-3})}}
	r, ok := AutoFit(curves, Log)
	if !ok {
		t.Fatal("AutoFit found nothing")
	}
	if r.Y.Min < LogFloor {
		t.Errorf("Y.Min = %g, below floor", r.Y.Min)
	}

	flat := []Curve{{X: []float64{5}, Y: []float64{2}}}
	r, _ = AutoFit(flat, Linear)
	if r.X.Span() < 1 || r.Y.Span() <= 0 {
		t.Errorf("degenerate fit = %+v", r)
	}
}

func TestGoTo(t *testing.T) {
	t.Parallel()
	bounds := Range{0, 100}
	if _, err := GoTo(50, 50, bounds); !errors.Is(err, ErrRange) {
		t.Errorf("GoTo(50,50) err = %v, want RangeError", err)
	}
	var re *RangeError
	if _, err := GoTo(60, 10, bounds); !errors.As(err, &re) || re.Start != 60 {
		t.Errorf("GoTo(60,10) err = %v", err)
	}

	r, err := GoTo(-50, 50, bounds)
	if err != nil {
		t.Fatalf("GoTo: %v", err)
	}
	if !near(r.Min, -1) || !near(r.Max, 51) {
		t.Errorf("clamped = %+v, want {-1 51}", r)
	}

	r, err = GoTo(200, 300, bounds)
	if err != nil {
		t.Fatalf("GoTo: %v", err)
	}
	if r.Span() <= 0 {
		t.Errorf("collapsed range not widened: %+v", r)
	}
}

func TestCenterOnAndLogValues(t *testing.T) {
	t.Parallel()
	r := CenterOn(100)
	if !near(r.Min, 94.8) || !near(r.Max, 105.2) {
		t.Errorf("CenterOn(100) = %+v", r)
	}
	lv := LogValues([]float64{-2, 0, math.Inf(1), 3})
	if lv[0] != 2 || !math.IsNaN(lv[1]) || !math.IsNaN(lv[2]) || lv[3] != 3 {
		t.Errorf("LogValues = %v", lv)
	}
	if ParseScaleMode("log") != Log || ParseScaleMode("x") != Linear {
		t.Error("ParseScaleMode mismatch")
	}
}
