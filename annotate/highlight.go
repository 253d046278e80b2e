package annotate

// HighlightState is the phase of the two-click region gesture.
type HighlightState int

const (
	Idle HighlightState = iota
	ArmedFirst
	ArmedSecond
)

func (s HighlightState) String() string {
	switch s {
	case ArmedFirst:
		return "waiting for first click"
	case ArmedSecond:
		return "waiting for second click"
	default:
		return "idle"
	}
}

// Span is an ordered pair of instants.
type Span struct {
	StartNS int64
	EndNS   int64
}

// Highlighter runs the two-click gesture. It never creates regions itself;
// the caller commits the returned Span once it has a label.
type Highlighter struct {
	state  HighlightState
	anchor int64
}

func (h *Highlighter) State() HighlightState { return h.state }

// Anchor returns the first click while waiting for the second.
func (h *Highlighter) Anchor() (int64, bool) {
	return h.anchor, h.state == ArmedSecond
}

func (h *Highlighter) Arm() {
	h.state = ArmedFirst
	h.anchor = 0
}

// Disarm returns to Idle and forgets any anchor.
func (h *Highlighter) Disarm() {
	h.state = Idle
	h.anchor = 0
}

// Toggle arms from Idle and disarms otherwise. It reports whether the
// highlighter is now armed.
func (h *Highlighter) Toggle() bool {
	if h.state == Idle {
		h.Arm()
		return true
	}
	h.Disarm()
	return false
}

// Click feeds a plot click. The second click returns the span and disarms.
func (h *Highlighter) Click(ns int64) (Span, bool) {
	switch h.state {
	case ArmedFirst:
		h.anchor = ns
		h.state = ArmedSecond
	case ArmedSecond:
		sp := Span{StartNS: min(h.anchor, ns), EndNS: max(h.anchor, ns)}
		h.Disarm()
		return sp, true
	}
	return Span{}, false
}
