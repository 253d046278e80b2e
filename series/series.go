// Package series tracks per-series display state: visibility, downsampling,
// style and the default salience ordering.
package series

import (
	"math"
	"sort"
	"strings"

	"github.com/andareed/siftly-dash/dataset"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultActiveLimit = 6
	DefaultWidth       = 2.2
	minPaletteHues     = 8
)

// Setting is a per-series downsampling choice: either an explicit value or
// whatever the manager default is.
type Setting struct {
	explicit bool
	value    bool
}

// Inherited follows the manager default.
var Inherited = Setting{}

// Explicit pins a value regardless of the default.
func Explicit(v bool) Setting { return Setting{explicit: true, value: v} }

func (s Setting) IsExplicit() bool { return s.explicit }

// Resolve returns the effective value under the given default.
func (s Setting) Resolve(def bool) bool {
	if s.explicit {
		return s.value
	}
	return def
}

// Style is a renderer-neutral pen description.
type Style struct {
	Color  string // #rrggbb
	Width  float64
	Dashed bool
}

type State struct {
	Active     bool
	Downsample Setting
	Style      Style
	Rank       int
	Salience   float64
}

// Defaults seed a new Manager.
type Defaults struct {
	ActiveLimit int
	Downsample  bool
}

// Manager owns the state of every series in one dataset. It is rebuilt,
// not patched, when a dataset is reloaded.
type Manager struct {
	order      []string // salience order
	columns    []string // dataset column order
	states     map[string]*State
	maxAbs     map[string]float64
	downsample bool
}

// New ranks the dataset's series and activates the most salient ones.
func New(ds *dataset.Dataset, def Defaults) *Manager {
	m := &Manager{
		columns:    append([]string(nil), ds.Names...),
		states:     make(map[string]*State, len(ds.Names)),
		maxAbs:     make(map[string]float64, len(ds.Names)),
		downsample: def.Downsample,
	}

	type scored struct {
		name  string
		score float64
	}
	scores := make([]scored, len(ds.Names))
	for i, name := range ds.Names {
		scores[i] = scored{name: name, score: Salience(ds.Series[name])}
		m.maxAbs[name] = maxAbs(ds.Series[name])
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	palette := Palette(len(scores))
	for rank, s := range scores {
		m.order = append(m.order, s.name)
		m.states[s.name] = &State{
			Active:     rank < def.ActiveLimit,
			Downsample: Inherited,
			Style:      Style{Color: palette[rank], Width: DefaultWidth},
			Rank:       rank,
			Salience:   s.score,
		}
	}
	return m
}

// Salience is 0.7*stdev + 0.3*max|v| over finite values; -Inf when there
// are none.
func Salience(values []float64) float64 {
	var sum, n float64
	peak := 0.0
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sum += v
		n++
		peak = math.Max(peak, math.Abs(v))
	}
	if n == 0 {
		return math.Inf(-1)
	}
	mean := sum / n
	var sq float64
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sq += (v - mean) * (v - mean)
	}
	return 0.7*math.Sqrt(sq/n) + 0.3*peak
}

func maxAbs(values []float64) float64 {
	peak := math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		peak = math.Max(peak, math.Abs(v))
	}
	return peak
}

// Palette spreads n colours evenly around the hue wheel, at least eight
// hues apart.
func Palette(n int) []string {
	hues := n
	if hues < minPaletteHues {
		hues = minPaletteHues
	}
	out := make([]string, n)
	for i := range out {
		out[i] = colorful.Hsv(360*float64(i)/float64(hues), 0.85, 0.95).Clamped().Hex()
	}
	return out
}

// Ordered returns every series in rank order.
func (m *Manager) Ordered() []string { return append([]string(nil), m.order...) }

// Active returns the active series in rank order.
func (m *Manager) Active() []string {
	var out []string
	for _, name := range m.order {
		if m.states[name].Active {
			out = append(out, name)
		}
	}
	return out
}

func (m *Manager) IsActive(name string) bool {
	st, ok := m.states[name]
	return ok && st.Active
}

// State returns a copy of the state for name.
func (m *Manager) State(name string) (State, bool) {
	st, ok := m.states[name]
	if !ok {
		return State{}, false
	}
	return *st, true
}

func (m *Manager) Toggle(name string) {
	if st, ok := m.states[name]; ok {
		st.Active = !st.Active
	}
}

func (m *Manager) SetActive(name string, on bool) {
	if st, ok := m.states[name]; ok {
		st.Active = on
	}
}

func (m *Manager) SetActiveAll(on bool) {
	for _, st := range m.states {
		st.Active = on
	}
}

func (m *Manager) InvertAll() {
	for _, st := range m.states {
		st.Active = !st.Active
	}
}

// ShowOnly activates name and deactivates everything else.
func (m *Manager) ShowOnly(name string) {
	if _, ok := m.states[name]; !ok {
		return
	}
	for n, st := range m.states {
		st.Active = n == name
	}
}

// ShowLargest activates only the series with the largest finite |value|.
// Ties go to the leftmost column.
func (m *Manager) ShowLargest() string {
	best := ""
	peak := math.Inf(-1)
	for _, name := range m.columns {
		if v := m.maxAbs[name]; v > peak {
			best, peak = name, v
		}
	}
	if best != "" {
		m.ShowOnly(best)
	}
	return best
}

// SetDownsample pins downsampling for one series.
func (m *Manager) SetDownsample(name string, on bool) {
	if st, ok := m.states[name]; ok {
		st.Downsample = Explicit(on)
	}
}

// ClearDownsample puts one series back on the default.
func (m *Manager) ClearDownsample(name string) {
	if st, ok := m.states[name]; ok {
		st.Downsample = Inherited
	}
}

// SetDownsampleDefault changes the default. Series with an explicit
// setting keep it.
func (m *Manager) SetDownsampleDefault(on bool) { m.downsample = on }

// ApplyDownsampleAll sets the default and drops every explicit override.
func (m *Manager) ApplyDownsampleAll(on bool) {
	m.downsample = on
	for _, st := range m.states {
		st.Downsample = Inherited
	}
}

func (m *Manager) DownsampleDefault() bool { return m.downsample }

// Downsample reports the effective downsampling flag for name.
func (m *Manager) Downsample(name string) bool {
	st, ok := m.states[name]
	if !ok {
		return m.downsample
	}
	return st.Downsample.Resolve(m.downsample)
}

// SetColor replaces the colour of one series. Invalid hex strings are
// ignored and reported as false.
func (m *Manager) SetColor(name, hex string) bool {
	st, ok := m.states[name]
	if !ok {
		return false
	}
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return false
	}
	st.Style.Color = c.Hex()
	return true
}

// Match returns the series whose name contains query, case-insensitively,
// in rank order. An empty query matches everything.
func (m *Manager) Match(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return m.Ordered()
	}
	var out []string
	for _, name := range m.order {
		if strings.Contains(strings.ToLower(name), q) {
			out = append(out, name)
		}
	}
	return out
}
