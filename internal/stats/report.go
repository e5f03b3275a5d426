package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/valvedrill/internal/model"
	"github.com/verte-zerg/valvedrill/internal/store"
)

const curveNotes = 5

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions         []model.SessionAggregate
	WindowSessionIDs []int64
	NoteAggsAll      []model.NoteAggregate
	NoteAggsWindow   []model.NoteAggregate
	PerSession       map[int64]map[int]model.NoteAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}

	allIDs := sessionIDs(sessions)
	windowIDs := lastSessionIDs(sessions, cfg.CurveWindow)
	aggsAll, err := st.ListNoteAggregatesForSessions(ctx, allIDs)
	if err != nil {
		return Report{}, err
	}
	aggsWindow, err := st.ListNoteAggregatesForSessions(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	perSession := make(map[int64]map[int]model.NoteAggregate, len(sessions))
	for _, id := range allIDs {
		aggs, err := st.ListNoteAggregatesForSessions(ctx, []int64{id})
		if err != nil {
			return Report{}, err
		}
		byPitch := make(map[int]model.NoteAggregate, len(aggs))
		for _, agg := range aggs {
			byPitch[agg.Pitch] = agg
		}
		perSession[id] = byPitch
	}

	return Report{
		Sessions:         sessions,
		WindowSessionIDs: windowIDs,
		NoteAggsAll:      aggsAll,
		NoteAggsWindow:   aggsWindow,
		PerSession:       perSession,
	}, nil
}

// Render writes the full text report.
func (r Report) Render(w io.Writer, cfg model.StatsConfig) error {
	if err := RenderSummary(w, r.Sessions); err != nil {
		return err
	}
	if len(r.Sessions) == 0 {
		return nil
	}
	if err := RenderCurves(w, r.Sessions, cfg.CurveWindow); err != nil {
		return err
	}
	if err := RenderNoteTable(w, r.NoteAggsWindow, cfg.Key); err != nil {
		return err
	}
	top := TopNotesByFrequency(r.NoteAggsAll, curveNotes)
	return RenderNoteCurves(w, r.Sessions, r.PerSession, top, cfg.Key, cfg.CurveWindow)
}

func sessionIDs(sessions []model.SessionAggregate) []int64 {
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}

func lastSessionIDs(sessions []model.SessionAggregate, window int) []int64 {
	if window <= 0 || len(sessions) <= window {
		return sessionIDs(sessions)
	}
	return sessionIDs(sessions[len(sessions)-window:])
}
