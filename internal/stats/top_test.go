package stats

import (
	"testing"

	"github.com/verte-zerg/valvedrill/internal/model"
)

func TestTopNotesByFrequency(t *testing.T) {
	aggs := []model.NoteAggregate{
		{Pitch: 46, Correct: 3, Incorrect: 1},
		{Pitch: 34, Correct: 2, Incorrect: 2},
		{Pitch: 41, Correct: 1, Incorrect: 0},
	}
	top := TopNotesByFrequency(aggs, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(top))
	}
	if top[0] != 34 || top[1] != 46 {
		t.Fatalf("unexpected order: %v", top)
	}
}
