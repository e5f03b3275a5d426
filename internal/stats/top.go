package stats

import (
	"sort"

	"github.com/verte-zerg/valvedrill/internal/model"
)

// TopNotesByFrequency returns the top N pitches by total attempts.
func TopNotesByFrequency(aggs []model.NoteAggregate, n int) []int {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	items := make([]model.NoteAggregate, len(aggs))
	copy(items, aggs)
	sort.Slice(items, func(i, j int) bool {
		ti := items[i].Correct + items[i].Incorrect
		tj := items[j].Correct + items[j].Incorrect
		if ti == tj {
			return items[i].Pitch < items[j].Pitch
		}
		return ti > tj
	})
	n = min(n, len(items))
	out := make([]int, 0, n)
	for _, agg := range items[:n] {
		out = append(out, agg.Pitch)
	}
	return out
}
