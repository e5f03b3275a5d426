package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/valvedrill/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "valvedrill.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func insert(t *testing.T, st *Store, key, rng string, score int, at time.Time, notes []model.NoteStats) int64 {
	t.Helper()
	id, err := st.InsertSession(context.Background(), model.SessionStats{
		StartedAt:  at,
		EndedAt:    at.Add(time.Minute),
		Key:        key,
		Range:      rng,
		Score:      score,
		Attempts:   score + 2,
		DurationMs: time.Minute.Milliseconds(),
	}, notes)
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}
	return id
}

func TestBestScore(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	best, err := st.BestScore(ctx, "Bb", "novice")
	if err != nil || best != 0 {
		t.Fatalf("expected 0 on empty db, got %d %v", best, err)
	}
	base := time.Unix(0, 0)
	insert(t, st, "Bb", "novice", 12, base, nil)
	insert(t, st, "Bb", "novice", 17, base.Add(time.Hour), nil)
	insert(t, st, "F", "novice", 30, base.Add(2*time.Hour), nil)

	best, err = st.BestScore(ctx, "Bb", "novice")
	if err != nil || best != 17 {
		t.Fatalf("expected 17, got %d %v", best, err)
	}
}

func TestWeakNotesWindow(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Unix(0, 0)
	insert(t, st, "Bb", "novice", 5, base, []model.NoteStats{{Pitch: 41, Correct: 0, Incorrect: 9}})
	insert(t, st, "Bb", "novice", 5, base.Add(time.Hour), []model.NoteStats{{Pitch: 41, Correct: 3, Incorrect: 1}, {Pitch: 46, Correct: 2}})
	insert(t, st, "C", "novice", 5, base.Add(2*time.Hour), []model.NoteStats{{Pitch: 36, Correct: 1}})

	aggs, err := st.GetWeakNotes(ctx, 1, "Bb", "novice")
	if err != nil {
		t.Fatalf("weak notes: %v", err)
	}
	if len(aggs) != 2 {
		t.Fatalf("expected 2 pitches from the latest Bb session, got %+v", aggs)
	}
	for _, agg := range aggs {
		if agg.Pitch == 41 && (agg.Correct != 3 || agg.Incorrect != 1) {
			t.Fatalf("window should exclude older sessions: %+v", agg)
		}
	}
	if aggs, _ := st.GetWeakNotes(ctx, 0, "Bb", "novice"); aggs != nil {
		t.Fatalf("zero window should return nothing")
	}
}

func TestListSessionsFilters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Unix(0, 0).UTC()
	first := insert(t, st, "Bb", "novice", 1, base, nil)
	insert(t, st, "Bb", "advanced", 2, base.Add(time.Hour), nil)
	third := insert(t, st, "Bb", "novice", 3, base.Add(2*time.Hour), nil)

	sessions, err := st.ListSessions(ctx, model.StatsConfig{Key: "Bb", Range: "novice"})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 2 || sessions[0].SessionID != first || sessions[1].SessionID != third {
		t.Fatalf("unexpected sessions %+v", sessions)
	}
	since := base.Add(90 * time.Minute)
	sessions, err = st.ListSessions(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Score != 3 {
		t.Fatalf("unexpected sessions since filter %+v", sessions)
	}
}

func TestListNoteAggregates(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Unix(0, 0)
	a := insert(t, st, "Bb", "novice", 1, base, []model.NoteStats{{Pitch: 41, Correct: 1, Incorrect: 1, LatencySumMs: 500, LatencyCount: 1}})
	b := insert(t, st, "Bb", "novice", 1, base.Add(time.Hour), []model.NoteStats{{Pitch: 41, Correct: 2, LatencySumMs: 700, LatencyCount: 2}})

	aggs, err := st.ListNoteAggregatesForSessions(ctx, []int64{a, b})
	if err != nil {
		t.Fatalf("aggregates: %v", err)
	}
	if len(aggs) != 1 {
		t.Fatalf("expected one pitch, got %+v", aggs)
	}
	got := aggs[0]
	if got.Correct != 3 || got.Incorrect != 1 || got.LatencySumMs != 1200 || got.LatencyCount != 3 {
		t.Fatalf("unexpected aggregate %+v", got)
	}
}
