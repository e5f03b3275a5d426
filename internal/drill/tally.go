package drill

import (
	"sort"

	"github.com/verte-zerg/valvedrill/internal/pitch"
)

// NoteTally aggregates results for one pitch within a session.
type NoteTally struct {
	Pitch        pitch.Pitch
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// Tally collects per-pitch results.
type Tally map[pitch.Pitch]*NoteTally

// Record adds an evaluated round.
func (t Tally) Record(r Round) {
	if r.State != Evaluated {
		return
	}
	entry, ok := t[r.Pitch]
	if !ok {
		entry = &NoteTally{Pitch: r.Pitch}
		t[r.Pitch] = entry
	}
	if r.Verdict == Correct {
		entry.Correct++
		if lat := r.Latency(); lat > 0 {
			entry.LatencySumMs += lat.Milliseconds()
			entry.LatencyCount++
		}
		return
	}
	entry.Incorrect++
}

// Sorted returns the entries in ascending pitch order.
func (t Tally) Sorted() []NoteTally {
	out := make([]NoteTally, 0, len(t))
	for _, entry := range t {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pitch < out[j].Pitch })
	return out
}
