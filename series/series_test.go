package series

import (
	"math"
	"testing"

	"github.com/andareed/siftly-dash/dataset"
)

func newDataset(cols map[string][]float64, names ...string) *dataset.Dataset {
	return &dataset.Dataset{Names: names, Series: cols}
}

func TestNewRanksBySalience(t *testing.T) {
	t.Parallel()
	nan := math.NaN()
	ds := newDataset(map[string][]float64{
		"flat":  {1, 1, 1},
		"wide":  {-10, 0, 10},
		"empty": {nan, nan, nan},
		"mid":   {0, 5, 0},
		"twin":  {0, 5, 0},
	}, "flat", "wide", "empty", "mid", "twin")

	m := New(ds, Defaults{ActiveLimit: 2, Downsample: true})
	want := []string{"wide", "mid", "twin", "flat", "empty"}
	got := m.Ordered()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Ordered() = %v, want %v", got, want)
		}
	}
	active := m.Active()
	if len(active) != 2 || active[0] != "wide" || active[1] != "mid" {
		t.Errorf("Active() = %v, want [wide mid]", active)
	}
	st, _ := m.State("empty")
	if !math.IsInf(st.Salience, -1) {
		t.Errorf("empty salience = %v, want -Inf", st.Salience)
	}
	if st.Style.Width != DefaultWidth || st.Style.Color == "" {
		t.Errorf("style not assigned: %+v", st.Style)
	}
}

func TestToggleAndBulk(t *testing.T) {
	t.Parallel()
	ds := newDataset(map[string][]float64{"a": {1}, "b": {2}, "c": {3}}, "a", "b", "c")
	m := New(ds, Defaults{ActiveLimit: 1})

	m.Toggle("a")
	m.Toggle("missing")
	if !m.IsActive("a") || !m.IsActive("c") {
		t.Fatalf("after toggle active = %v", m.Active())
	}
	m.InvertAll()
	if got := m.Active(); len(got) != 1 || got[0] != "b" {
		t.Errorf("after invert active = %v, want [b]", got)
	}
	m.SetActiveAll(true)
	if len(m.Active()) != 3 {
		t.Errorf("SetActiveAll(true) active = %v", m.Active())
	}
	m.SetActiveAll(false)
	if len(m.Active()) != 0 {
		t.Errorf("SetActiveAll(false) active = %v", m.Active())
	}
	if got := m.ShowLargest(); got != "c" || !m.IsActive("c") || len(m.Active()) != 1 {
		t.Errorf("ShowLargest = %q active=%v", got, m.Active())
	}
}

func TestShowLargestTieGoesToFirstColumn(t *testing.T) {
	t.Parallel()
	ds := newDataset(map[string][]float64{
		"steady": {5, 5, 5},
		"swing":  {-5, 0, 5},
	}, "steady", "swing")
	m := New(ds, Defaults{ActiveLimit: 6})
	if got := m.Ordered(); got[0] != "swing" {
		t.Fatalf("Ordered() = %v, want swing ranked first", got)
	}
	if got := m.ShowLargest(); got != "steady" {
		t.Errorf("ShowLargest = %q, want steady", got)
	}
	if active := m.Active(); len(active) != 1 || active[0] != "steady" {
		t.Errorf("Active() = %v", active)
	}
}

func TestDownsampleSetting(t *testing.T) {
	t.Parallel()
	ds := newDataset(map[string][]float64{"a": {1}, "b": {2}}, "a", "b")
	m := New(ds, Defaults{ActiveLimit: 6, Downsample: true})

	m.SetDownsample("a", false)
	m.SetDownsampleDefault(false)
	m.SetDownsampleDefault(true)
	if m.Downsample("a") {
		t.Error("explicit override lost after default change")
	}
	if !m.Downsample("b") {
		t.Error("inherited series did not follow default")
	}

	m.ApplyDownsampleAll(false)
	if m.Downsample("a") || m.Downsample("b") {
		t.Error("ApplyDownsampleAll(false) left a series on")
	}
	st, _ := m.State("a")
	if st.Downsample.IsExplicit() {
		t.Error("ApplyDownsampleAll did not clear override")
	}
}

func TestSetColorAndMatch(t *testing.T) {
	t.Parallel()
	ds := newDataset(map[string][]float64{"Chamber_Temp": {1}, "rf_power": {2}}, "Chamber_Temp", "rf_power")
	m := New(ds, Defaults{ActiveLimit: 6})

	if !m.SetColor("rf_power", "#FF0000") {
		t.Fatal("SetColor rejected a valid colour")
	}
	if st, _ := m.State("rf_power"); st.Style.Color != "#ff0000" {
		t.Errorf("colour = %q, want #ff0000", st.Style.Color)
	}
	if m.SetColor("rf_power", "red") {
		t.Error("SetColor accepted an invalid colour")
	}
	if got := m.Match("TEMP"); len(got) != 1 || got[0] != "Chamber_Temp" {
		t.Errorf("Match(TEMP) = %v", got)
	}
}

func TestPaletteDistinct(t *testing.T) {
	t.Parallel()
	p := Palette(10)
	seen := map[string]bool{}
	for _, c := range p {
		if seen[c] {
			t.Fatalf("duplicate colour %s in %v", c, p)
		}
		seen[c] = true
	}
}
