package annotate

import (
	"testing"
	"time"

	"github.com/andareed/siftly-dash/events"
)

func TestHighlightCommit(t *testing.T) {
	t.Parallel()
	m := New(time.UTC)
	m.Highlight.Arm()
	if _, done := m.Highlight.Click(100); done {
		t.Fatal("first click completed the gesture")
	}
	if a, ok := m.Highlight.Anchor(); !ok || a != 100 {
		t.Fatalf("Anchor() = %d, %v", a, ok)
	}
	sp, done := m.Highlight.Click(50)
	if !done {
		t.Fatal("second click did not complete")
	}
	if m.Highlight.State() != Idle {
		t.Errorf("state after second click = %s, want idle", m.Highlight.State())
	}
	r, ok := m.CommitRegion(sp, "dip")
	if !ok || r.StartNS != 50 || r.EndNS != 100 || r.Label != "dip" {
		t.Fatalf("CommitRegion = %+v, %v", r, ok)
	}
	if len(m.Regions()) != 1 {
		t.Errorf("regions = %d, want 1", len(m.Regions()))
	}
}

func TestHighlightCancel(t *testing.T) {
	t.Parallel()
	m := New(time.UTC)
	m.Highlight.Arm()
	m.Highlight.Click(10)
	sp, done := m.Highlight.Click(20)
	if !done {
		t.Fatal("second click did not complete")
	}
	if _, ok := m.CommitRegion(sp, "   "); ok {
		t.Error("blank label created a region")
	}
	if m.Highlight.State() != Idle {
		t.Errorf("state = %s, want idle", m.Highlight.State())
	}
	if _, ok := m.Highlight.Anchor(); ok {
		t.Error("anchor survived cancel")
	}

	m.Highlight.Arm()
	m.Highlight.Click(30)
	m.Highlight.Disarm()
	if _, done := m.Highlight.Click(40); done {
		t.Error("click after disarm completed a region")
	}
	if len(m.Regions()) != 0 {
		t.Errorf("regions = %d, want 0", len(m.Regions()))
	}
}

func TestBookmarks(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("KST", 9*60*60)
	m := New(loc)
	b := m.AddBookmark(0, "")
	if b.Label != "1970-01-01 09:00:00" {
		t.Errorf("default label = %q", b.Label)
	}
	m.AddBookmark(5e9, "peak")

	if m.RemoveBookmark(7) || m.RemoveBookmark(-1) {
		t.Error("out-of-range removal reported success")
	}
	if len(m.Bookmarks()) != 2 {
		t.Fatalf("bookmarks = %d, want 2", len(m.Bookmarks()))
	}
	if !m.RemoveBookmark(0) {
		t.Fatal("RemoveBookmark(0) failed")
	}
	if got, ok := m.Bookmark(0); !ok || got.Label != "peak" {
		t.Errorf("Bookmark(0) = %+v, %v", got, ok)
	}
}

func TestThresholdsAppendOnly(t *testing.T) {
	t.Parallel()
	m := New(nil)
	a := m.AddThreshold("v", 5)
	m.AddThreshold("v", 5)
	m.AddThreshold("w", 1)
	if len(m.ThresholdsFor("v")) != 2 {
		t.Errorf("equal thresholds were merged")
	}
	if !m.RemoveThreshold(a.ID) || len(m.Thresholds()) != 2 {
		t.Errorf("RemoveThreshold left %d", len(m.Thresholds()))
	}
}

func TestEventLogAndReset(t *testing.T) {
	t.Parallel()
	m := New(time.UTC)
	if _, ok := m.AddManual(10, ""); ok {
		t.Error("empty note was logged")
	}
	m.AddManual(30, "note")
	m.AppendHits([]events.Hit{{TimeNS: 20, Label: "v>", Origin: events.OriginRule, Series: "v"}})

	evs := m.EventsByTime()
	if len(evs) != 2 || evs[0].TimeNS != 20 || evs[1].Origin != events.OriginManual {
		t.Fatalf("EventsByTime = %+v", evs)
	}
	if m.RemoveEvent(5) {
		t.Error("RemoveEvent(5) reported success")
	}

	m.AddBookmark(1, "keep")
	m.AddThreshold("v", 1)
	m.Highlight.Arm()
	m.Reset()
	if len(m.Events()) != 0 || len(m.Thresholds()) != 0 || m.Highlight.State() != Idle {
		t.Error("Reset left dataset-bound state")
	}
	if len(m.Bookmarks()) != 1 {
		t.Error("Reset dropped bookmarks")
	}
}
