package stats

import (
	"sort"

	"github.com/verte-zerg/valvedrill/internal/model"
	"github.com/verte-zerg/valvedrill/internal/pitch"
)

// SelectWeakNotes selects the lowest-accuracy pitches from aggregates.
// Pitches with no misses are never considered weak.
func SelectWeakNotes(aggs []model.NoteAggregate, top int) map[pitch.Pitch]struct{} {
	weakSet := map[pitch.Pitch]struct{}{}
	candidates := make([]model.NoteAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Incorrect > 0 {
			candidates = append(candidates, agg)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai := accuracy(candidates[i])
		aj := accuracy(candidates[j])
		if ai == aj {
			return candidates[i].Pitch < candidates[j].Pitch
		}
		return ai < aj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	for _, agg := range candidates[:top] {
		weakSet[pitch.Pitch(agg.Pitch)] = struct{}{}
	}
	return weakSet
}

func accuracy(agg model.NoteAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}
