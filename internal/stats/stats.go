// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/valvedrill/internal/keysig"
	"github.com/verte-zerg/valvedrill/internal/model"
	"github.com/verte-zerg/valvedrill/internal/pitch"
)

const sparkChars = " .:-=+*#%@"

// SessionMetrics computes notes per minute and accuracy for a session.
func SessionMetrics(score, attempts int, durationMs int64) (npm, accuracy float64) {
	if durationMs <= 0 {
		return 0, 0
	}
	minutes := float64(durationMs) / 60000.0
	npm = float64(score) / minutes
	if attempts > 0 {
		accuracy = float64(score) / float64(attempts)
	}
	return npm, accuracy
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints a summary block for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalNPM, totalAcc float64
	best := 0
	for _, s := range sessions {
		npm, acc := SessionMetrics(s.Score, s.Attempts, s.DurationMs)
		totalNPM += npm
		totalAcc += acc
		best = max(best, s.Score)
	}
	count := float64(len(sessions))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(sessions)),
		fmt.Sprintf("Best Score: %d", best),
		fmt.Sprintf("Avg Notes/min: %.2f", totalNPM/count),
		fmt.Sprintf("Avg Accuracy: %.2f%%", (totalAcc/count)*100),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints score and accuracy sparklines sized to the terminal.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window int) error {
	return RenderCurvesWithWidth(w, sessions, window, 0)
}

// RenderCurvesWithWidth prints score and accuracy sparklines at most width columns wide.
// A width of zero uses the terminal width.
func RenderCurvesWithWidth(w io.Writer, sessions []model.SessionAggregate, window, width int) error {
	if len(sessions) == 0 {
		return nil
	}
	scores := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		_, acc := SessionMetrics(s.Score, s.Attempts, s.DurationMs)
		scores[i] = float64(s.Score)
		accs[i] = acc * 100
	}
	if width <= 0 {
		width = autoCurveWidth()
	}
	if _, err := fmt.Fprintln(w, "Learning Curves"); err != nil {
		return err
	}
	rows := [][]string{
		curveRow("Score", MovingAverage(scores, window), width),
		curveRow("Accuracy", MovingAverage(accs, window), width),
	}
	for _, line := range formatTable(nil, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderNoteTable prints per-pitch aggregates, weakest first.
func RenderNoteTable(w io.Writer, aggs []model.NoteAggregate, key string) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No note stats found.")
		return err
	}
	acc := pitch.Sharp
	if key != "" {
		acc = keysig.Preference(key)
	}
	sorted := make([]model.NoteAggregate, len(aggs))
	copy(sorted, aggs)
	sort.Slice(sorted, func(i, j int) bool {
		ai, aj := accuracy(sorted[i]), accuracy(sorted[j])
		if ai == aj {
			return sorted[i].Pitch < sorted[j].Pitch
		}
		return ai < aj
	})

	if _, err := fmt.Fprintln(w, "Per-Note (Windowed)"); err != nil {
		return err
	}
	headers := []string{"Note", "Accuracy", "Avg Latency (ms)", "Correct", "Incorrect"}
	rows := make([][]string, 0, len(sorted))
	for _, agg := range sorted {
		lat := 0.0
		if agg.LatencyCount > 0 {
			lat = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
		}
		rows = append(rows, []string{
			pitch.Pitch(agg.Pitch).Name(acc),
			fmt.Sprintf("%.2f%%", accuracy(agg)*100),
			fmt.Sprintf("%.1f", lat),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Incorrect),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderNoteCurves prints per-pitch accuracy sparklines across sessions.
// Each curve only has a point for sessions in which the pitch was answered.
func RenderNoteCurves(w io.Writer, sessions []model.SessionAggregate, perSession map[int64]map[int]model.NoteAggregate, pitches []int, key string, window int) error {
	if len(pitches) == 0 || len(sessions) == 0 {
		return nil
	}
	acc := pitch.Sharp
	if key != "" {
		acc = keysig.Preference(key)
	}
	if _, err := fmt.Fprintln(w, "Per-Note Curves"); err != nil {
		return err
	}
	width := autoCurveWidth()
	rows := make([][]string, 0, len(pitches))
	for _, p := range pitches {
		series := noteSeries(sessions, perSession, p)
		if len(series) == 0 {
			continue
		}
		rows = append(rows, curveRow(pitch.Pitch(p).Name(acc), MovingAverage(series, window), width))
	}
	for _, line := range formatTable(nil, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func noteSeries(sessions []model.SessionAggregate, perSession map[int64]map[int]model.NoteAggregate, p int) []float64 {
	series := make([]float64, 0, len(sessions))
	for _, s := range sessions {
		agg, ok := perSession[s.SessionID][p]
		if !ok || agg.Correct+agg.Incorrect == 0 {
			continue
		}
		series = append(series, accuracy(agg)*100)
	}
	return series
}
