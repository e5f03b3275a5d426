package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/valvedrill/internal/drill"
	"github.com/verte-zerg/valvedrill/internal/fingering"
	"github.com/verte-zerg/valvedrill/internal/pitch"
)

// buildResultsTable lists the session's per-note results in pitch order.
func buildResultsTable(tally drill.Tally, acc pitch.Accidental, height int) table.Model {
	columns := []table.Column{
		{Title: "Note", Width: 4},
		{Title: "Valves", Width: 7},
		{Title: "Accuracy", Width: 9},
		{Title: "Avg Latency (ms)", Width: 17},
		{Title: "Correct", Width: 7},
		{Title: "Incorrect", Width: 9},
	}
	entries := tally.Sorted()
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		total := e.Correct + e.Incorrect
		accPct := 0.0
		if total > 0 {
			accPct = float64(e.Correct) / float64(total) * 100
		}
		lat := 0.0
		if e.LatencyCount > 0 {
			lat = float64(e.LatencySumMs) / float64(e.LatencyCount)
		}
		valves := "-"
		if f, err := fingering.Lookup(e.Pitch); err == nil {
			valves = f.String()
		}
		rows = append(rows, table.Row{
			e.Pitch.Name(acc),
			valves,
			fmt.Sprintf("%.2f%%", accPct),
			fmt.Sprintf("%.1f", lat),
			fmt.Sprintf("%d", e.Correct),
			fmt.Sprintf("%d", e.Incorrect),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(max(1, min(height, len(rows)+2))),
	)
	t.SetStyles(resultsTableStyles())
	return t
}

func resultsTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell
	return styles
}
