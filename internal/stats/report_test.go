package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/valvedrill/internal/model"
	"github.com/verte-zerg/valvedrill/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "valvedrill.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(time.Minute)
		stats := model.SessionStats{
			StartedAt:  start,
			EndedAt:    end,
			Key:        "Bb",
			Range:      "novice",
			Score:      10 + i,
			Attempts:   12 + i,
			DurationMs: end.Sub(start).Milliseconds(),
		}
		notes := []model.NoteStats{
			{Pitch: 41, Correct: 5, Incorrect: 0, LatencySumMs: 2000, LatencyCount: 5},
			{Pitch: 34, Correct: 4, Incorrect: 2, LatencySumMs: 3000, LatencyCount: 6},
		}
		id, err := st.InsertSession(ctx, stats, notes)
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}

	cfg := model.StatsConfig{
		Key:         "Bb",
		Last:        2,
		CurveWindow: 2,
	}
	report, err := BuildReport(ctx, st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(report.Sessions))
	}
	if report.Sessions[0].SessionID != ids[1] || report.Sessions[1].SessionID != ids[2] {
		t.Fatalf("unexpected session ids: %+v", report.Sessions)
	}
	if len(report.WindowSessionIDs) != 2 {
		t.Fatalf("expected 2 window session ids, got %d", len(report.WindowSessionIDs))
	}
	if len(report.NoteAggsAll) != 2 || len(report.NoteAggsWindow) != 2 {
		t.Fatalf("expected note aggregates, got %+v / %+v", report.NoteAggsAll, report.NoteAggsWindow)
	}
	if got := report.PerSession[ids[2]][34].Incorrect; got != 2 {
		t.Fatalf("expected per-session aggregate for Bb2, got %d", got)
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, cfg); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Summary", "Best Score: 12", "Learning Curves", "Per-Note (Windowed)", "Bb2", "F3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions found.") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
