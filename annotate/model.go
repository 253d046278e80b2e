// Package annotate holds the overlay model: threshold lines, highlighted
// regions, bookmarks and the event log. Entries carry ids and coordinates
// only; drawing them is someone else's job.
package annotate

import (
	"sort"
	"strings"
	"time"

	"github.com/andareed/siftly-dash/events"
	"github.com/google/uuid"
)

const bookmarkLabelLayout = "2006-01-02 15:04:05"

type Threshold struct {
	ID        string
	Series    string
	Value     float64
	CreatedAt time.Time
}

type Region struct {
	ID      string
	StartNS int64
	EndNS   int64
	Label   string
}

type Bookmark struct {
	ID     string
	TimeNS int64
	Label  string
}

// Model owns every annotation of one session.
type Model struct {
	thresholds []Threshold
	regions    []Region
	bookmarks  []Bookmark
	events     []events.Hit
	Highlight  Highlighter

	// Location formats default bookmark labels.
	Location *time.Location
	now      func() time.Time
}

func New(loc *time.Location) *Model {
	if loc == nil {
		loc = time.UTC
	}
	return &Model{Location: loc, now: time.Now}
}

// Reset drops everything tied to the loaded dataset. Bookmarks are plain
// instants and survive.
func (m *Model) Reset() {
	m.thresholds = nil
	m.regions = nil
	m.events = nil
	m.Highlight.Disarm()
}

// --- thresholds ---

func (m *Model) AddThreshold(series string, value float64) Threshold {
	th := Threshold{ID: uuid.NewString(), Series: series, Value: value, CreatedAt: m.now()}
	m.thresholds = append(m.thresholds, th)
	return th
}

func (m *Model) RemoveThreshold(id string) bool {
	for i, th := range m.thresholds {
		if th.ID == id {
			m.thresholds = append(m.thresholds[:i], m.thresholds[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Model) Thresholds() []Threshold { return append([]Threshold(nil), m.thresholds...) }

func (m *Model) ThresholdsFor(series string) []Threshold {
	var out []Threshold
	for _, th := range m.thresholds {
		if th.Series == series {
			out = append(out, th)
		}
	}
	return out
}

// --- regions ---

// CommitRegion stores span under label. A blank label means the user
// backed out and nothing is stored.
func (m *Model) CommitRegion(sp Span, label string) (Region, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Region{}, false
	}
	if sp.EndNS < sp.StartNS {
		sp.StartNS, sp.EndNS = sp.EndNS, sp.StartNS
	}
	r := Region{ID: uuid.NewString(), StartNS: sp.StartNS, EndNS: sp.EndNS, Label: label}
	m.regions = append(m.regions, r)
	return r, true
}

func (m *Model) RemoveRegion(id string) bool {
	for i, r := range m.regions {
		if r.ID == id {
			m.regions = append(m.regions[:i], m.regions[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Model) Regions() []Region { return append([]Region(nil), m.regions...) }

// --- bookmarks ---

// AddBookmark appends a bookmark; an empty label becomes the formatted
// time.
func (m *Model) AddBookmark(ns int64, label string) Bookmark {
	label = strings.TrimSpace(label)
	if label == "" {
		label = time.Unix(0, ns).In(m.Location).Format(bookmarkLabelLayout)
	}
	b := Bookmark{ID: uuid.NewString(), TimeNS: ns, Label: label}
	m.bookmarks = append(m.bookmarks, b)
	return b
}

// RemoveBookmark deletes by position; out of range is a no-op.
func (m *Model) RemoveBookmark(i int) bool {
	if i < 0 || i >= len(m.bookmarks) {
		return false
	}
	m.bookmarks = append(m.bookmarks[:i], m.bookmarks[i+1:]...)
	return true
}

func (m *Model) Bookmark(i int) (Bookmark, bool) {
	if i < 0 || i >= len(m.bookmarks) {
		return Bookmark{}, false
	}
	return m.bookmarks[i], true
}

func (m *Model) Bookmarks() []Bookmark { return append([]Bookmark(nil), m.bookmarks...) }

// --- event log ---

// AddManual logs a user note at ns. Blank text is ignored.
func (m *Model) AddManual(ns int64, text string) (events.Hit, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return events.Hit{}, false
	}
	h := events.Hit{ID: uuid.NewString(), TimeNS: ns, Label: text, Origin: events.OriginManual}
	m.events = append(m.events, h)
	return h, true
}

// AppendHits adds scan results as-is; repeated scans are not de-duplicated.
func (m *Model) AppendHits(hits []events.Hit) {
	m.events = append(m.events, hits...)
}

func (m *Model) RemoveEvent(i int) bool {
	if i < 0 || i >= len(m.events) {
		return false
	}
	m.events = append(m.events[:i], m.events[i+1:]...)
	return true
}

func (m *Model) Event(i int) (events.Hit, bool) {
	if i < 0 || i >= len(m.events) {
		return events.Hit{}, false
	}
	return m.events[i], true
}

// Events returns the log in insertion order.
func (m *Model) Events() []events.Hit { return append([]events.Hit(nil), m.events...) }

// EventsByTime returns the log stably sorted by time.
func (m *Model) EventsByTime() []events.Hit {
	out := m.Events()
	sort.SliceStable(out, func(i, j int) bool { return out[i].TimeNS < out[j].TimeNS })
	return out
}
