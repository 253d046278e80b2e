// Package session is the single owner of everything a user works on: the
// loaded dataset, per-series state, rules, annotations and the optional
// comparison. Loads replace all dataset-bound state at once.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/andareed/siftly-dash/annotate"
	"github.com/andareed/siftly-dash/compare"
	"github.com/andareed/siftly-dash/dataset"
	"github.com/andareed/siftly-dash/events"
	"github.com/andareed/siftly-dash/logging"
	"github.com/andareed/siftly-dash/series"
	"github.com/andareed/siftly-dash/viewport"
)

var (
	ErrNotLoaded       = errors.New("no dataset loaded")
	ErrNoActiveSeries  = errors.New("no active series")
	ErrNothingVisible  = errors.New("no points in the visible time range")
	ErrCompareDisabled = errors.New("comparison is off")
)

// Options are fixed for the lifetime of a Session.
type Options struct {
	ActiveLimit  int
	Downsample   bool
	Location     *time.Location
	SniffBytes   int
	NumericRatio float64
	Progress     func(dataset.Stage)
}

type Session struct {
	opts Options

	ds     *dataset.Dataset
	series *series.Manager
	rules  *events.RuleSet
	notes  *annotate.Model

	cmp       *compare.Comparison
	compareOn bool

	scale      viewport.ScaleMode
	timeRange  dataset.TimeRange
	timeColumn string

	Markers    bool
	Scratchpad string
}

func New(opts Options) *Session {
	if opts.Location == nil {
		opts.Location = dataset.DefaultLocation()
	}
	if opts.ActiveLimit <= 0 {
		opts.ActiveLimit = series.DefaultActiveLimit
	}
	return &Session{
		opts:  opts,
		rules: events.NewRuleSet(),
		notes: annotate.New(opts.Location),
	}
}

// LoadOptions are the ingestion options the next load will use. The shell
// passes them to dataset.Load off the update loop and hands the result to
// Install.
func (s *Session) LoadOptions() dataset.Options {
	return dataset.Options{
		Range:        s.timeRange,
		Location:     s.opts.Location,
		TimeColumn:   s.timeColumn,
		SniffBytes:   s.opts.SniffBytes,
		NumericRatio: s.opts.NumericRatio,
		Progress:     s.opts.Progress,
	}
}

// SetTimeRange restricts subsequent loads. A nil bound is open.
func (s *Session) SetTimeRange(start, end *time.Time) error {
	if start != nil && end != nil && !start.Before(*end) {
		return &viewport.RangeError{
			Start: float64(start.UnixNano()) / 1e9,
			End:   float64(end.UnixNano()) / 1e9,
		}
	}
	s.timeRange = dataset.TimeRange{Start: start, End: end}
	return nil
}

func (s *Session) TimeRange() dataset.TimeRange { return s.timeRange }

// SetTimeColumn overrides time-column detection for subsequent loads.
func (s *Session) SetTimeColumn(name string) { s.timeColumn = name }

// Load reads path and installs it. On error the current state is kept.
func (s *Session) Load(path string) error {
	ds, err := dataset.Load(path, s.LoadOptions())
	if err != nil {
		return err
	}
	s.Install(ds)
	return nil
}

// Install swaps in a freshly loaded dataset and rebuilds everything that
// depends on it. Bookmarks, scratchpad and scale mode carry over.
func (s *Session) Install(ds *dataset.Dataset) {
	s.ds = ds
	s.series = series.New(ds, series.Defaults{ActiveLimit: s.opts.ActiveLimit, Downsample: s.opts.Downsample})
	s.rules = events.NewRuleSet()
	s.notes.Reset()
	s.cmp = nil
	logging.Infof("session: installed %s (%d rows, %d series)", ds.Path, ds.Len(), len(ds.Names))
}

func (s *Session) Loaded() bool { return s.ds != nil }

func (s *Session) Dataset() *dataset.Dataset { return s.ds }

// Series is nil until a dataset is installed.
func (s *Session) Series() *series.Manager { return s.series }

func (s *Session) Rules() *events.RuleSet { return s.rules }

func (s *Session) Annotations() *annotate.Model { return s.notes }

func (s *Session) Location() *time.Location { return s.opts.Location }

// --- scale ---

func (s *Session) Scale() viewport.ScaleMode { return s.scale }

func (s *Session) SetScale(m viewport.ScaleMode) { s.scale = m }

// AxisLabel is the caption for the value axis.
func (s *Session) AxisLabel() string {
	var active []string
	if s.series != nil {
		active = s.series.Active()
	}
	return dataset.AxisLabel(active, s.scale == viewport.Normalize)
}

// --- rules ---

// SetRule stores a rule for name; unknown series are ignored.
func (s *Session) SetRule(name string, r events.Rule) bool {
	if s.ds == nil || !s.ds.Has(name) {
		return false
	}
	s.rules.Set(name, r)
	return true
}

// RunConditions scans the dataset and appends the hits to the event log.
func (s *Session) RunConditions() []events.Hit {
	if s.ds == nil {
		return nil
	}
	hits := events.Scan(s.ds, s.rules)
	s.notes.AppendHits(hits)
	logging.Infof("session: condition scan over %d rules produced %d hits", s.rules.Len(), len(hits))
	return hits
}

// --- comparison ---

func (s *Session) CompareEnabled() bool { return s.compareOn }

func (s *Session) EnableCompare() { s.compareOn = true }

// DisableCompare turns comparison off and discards the reference.
func (s *Session) DisableCompare() {
	s.compareOn = false
	s.cmp = nil
}

func (s *Session) Comparison() *compare.Comparison { return s.cmp }

// LoadReference reads and installs a reference file.
func (s *Session) LoadReference(path string) error {
	if !s.compareOn {
		return ErrCompareDisabled
	}
	if s.ds == nil {
		return ErrNotLoaded
	}
	cmp, err := compare.Load(path, s.ds, s.LoadOptions())
	if err != nil {
		return err
	}
	s.cmp = cmp
	return nil
}

// InstallReference aligns an already-parsed reference against the primary.
func (s *Session) InstallReference(ref *dataset.Dataset) error {
	if !s.compareOn {
		return ErrCompareDisabled
	}
	if s.ds == nil {
		return ErrNotLoaded
	}
	s.cmp = compare.Align(s.ds, ref)
	return nil
}

// --- lookups ---

// NearestIndex is -1 when nothing is loaded.
func (s *Session) NearestIndex(sec float64) int {
	if s.ds == nil {
		return -1
	}
	return s.ds.NearestIndex(sec)
}

// Bounds is the full data X range.
func (s *Session) Bounds() (viewport.Range, bool) {
	if s.ds == nil {
		return viewport.Range{}, false
	}
	lo, hi, ok := s.ds.Bounds()
	return viewport.Range{Min: lo, Max: hi}, ok
}

// Diagnostics summarises every series, active ones first.
func (s *Session) Diagnostics() string {
	if s.ds == nil {
		return "Load a file to see diagnostics here."
	}
	return s.ds.Diagnostics(s.series.Ordered(), s.series.IsActive)
}

// VisibleFrame returns the active series over [x.Min, x.Max].
func (s *Session) VisibleFrame(x viewport.Range) (dataset.Frame, error) {
	if s.ds == nil || s.ds.Len() == 0 {
		return dataset.Frame{}, ErrNotLoaded
	}
	active := s.series.Active()
	if len(active) == 0 {
		return dataset.Frame{}, ErrNoActiveSeries
	}
	f := s.ds.Slice(x.Min, x.Max, active)
	if f.Rows() == 0 {
		return dataset.Frame{}, ErrNothingVisible
	}
	return f, nil
}

// GoTo converts a manual time range into an X window clamped to the data.
func (s *Session) GoTo(start, end time.Time) (viewport.Range, error) {
	b, ok := s.Bounds()
	if !ok {
		return viewport.Range{}, ErrNotLoaded
	}
	r, err := viewport.GoTo(seconds(start), seconds(end), b)
	if err != nil {
		return viewport.Range{}, fmt.Errorf("go to range: %w", err)
	}
	return r, nil
}

// JumpToBookmark returns the X window around bookmark i.
func (s *Session) JumpToBookmark(i int) (viewport.Range, bool) {
	b, ok := s.notes.Bookmark(i)
	if !ok {
		return viewport.Range{}, false
	}
	return viewport.CenterOn(float64(b.TimeNS) / 1e9), true
}

// JumpToEvent returns the X window around event i.
func (s *Session) JumpToEvent(i int) (viewport.Range, bool) {
	h, ok := s.notes.Event(i)
	if !ok {
		return viewport.Range{}, false
	}
	return viewport.CenterOn(float64(h.TimeNS) / 1e9), true
}

// AddEventAt logs a manual note at the sample nearest to sec.
func (s *Session) AddEventAt(sec float64, text string) (events.Hit, bool) {
	i := s.NearestIndex(sec)
	if i < 0 {
		return events.Hit{}, false
	}
	return s.notes.AddManual(s.ds.TimeNS[i], text)
}

// AddBookmarkAt bookmarks the sample nearest to sec.
func (s *Session) AddBookmarkAt(sec float64, label string) (annotate.Bookmark, bool) {
	i := s.NearestIndex(sec)
	if i < 0 {
		return annotate.Bookmark{}, false
	}
	return s.notes.AddBookmark(s.ds.TimeNS[i], label), true
}

// HighlightClick feeds the sample nearest to sec to the region gesture, so
// region edges always sit on recorded instants.
func (s *Session) HighlightClick(sec float64) (annotate.Span, bool) {
	i := s.NearestIndex(sec)
	if i < 0 {
		return annotate.Span{}, false
	}
	return s.notes.Highlight.Click(s.ds.TimeNS[i])
}

func seconds(t time.Time) float64 { return float64(t.UnixNano()) / 1e9 }
