package drill

import (
	"time"

	"github.com/verte-zerg/valvedrill/internal/fingering"
	"github.com/verte-zerg/valvedrill/internal/pitch"
)

// Timing of a round.
const (
	CaptureDelay   = 250 * time.Millisecond
	CorrectPause   = 500 * time.Millisecond
	IncorrectPause = 2 * time.Second
	SessionLength  = 60 * time.Second
)

// State is the capture state of a round.
type State int

// Round states.
const (
	Idle State = iota
	Capturing
	Evaluated
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Capturing:
		return "capturing"
	case Evaluated:
		return "evaluated"
	default:
		return "idle"
	}
}

// Round is one note-to-verdict cycle. Methods return updated copies.
type Round struct {
	ID           uint64
	Pitch        pitch.Pitch
	Spelling     pitch.Accidental
	Expected     fingering.Fingering
	Captured     fingering.Fingering
	State        State
	Verdict      Verdict
	ShownAt      time.Time
	CaptureStart time.Time
}

// Display is what a renderer needs to draw the current note.
type Display struct {
	Pitch      pitch.Pitch
	Name       string
	Octave     int
	Accidental string
}

// Press adds v to the captured set. The second result is true when this
// press opened the capture window, in which case the caller schedules
// Resolve after CaptureDelay.
func (r Round) Press(v fingering.Valve, now time.Time) (Round, bool) {
	if r.State == Evaluated || r.Captured.Contains(v) {
		return r, false
	}
	captured := make(fingering.Fingering, 0, len(r.Captured)+1)
	captured = append(captured, r.Captured...)
	r.Captured = append(captured, v)
	if r.State == Idle {
		r.State = Capturing
		r.CaptureStart = now
		return r, true
	}
	return r, false
}

// Resolve evaluates the captured set if id still names this round and it is
// capturing. Stale or repeated calls leave the round unchanged and report false.
func (r Round) Resolve(id uint64) (Round, Verdict, bool) {
	if id != r.ID || r.State != Capturing {
		return r, r.Verdict, false
	}
	r.Verdict = Evaluate(r.Captured, r.Expected)
	r.State = Evaluated
	return r, r.Verdict, true
}

// Latency is the time from showing the note to the first press.
func (r Round) Latency() time.Duration {
	if r.ShownAt.IsZero() || r.CaptureStart.IsZero() {
		return 0
	}
	return r.CaptureStart.Sub(r.ShownAt)
}

// Display returns the spelled note for rendering.
func (r Round) Display() Display {
	name := pitch.Spell(r.Pitch.Class(), r.Spelling)
	acc := ""
	if pitch.HasAccidental(r.Pitch.Class()) {
		acc = name[1:]
	}
	return Display{
		Pitch:      r.Pitch,
		Name:       name,
		Octave:     r.Pitch.Octave(),
		Accidental: acc,
	}
}
