package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/valvedrill/internal/drill"
)

// Bass clef geometry in diatonic steps (octave*7 + letter index).
const (
	staffBottom = 2*7 + 4 // G2
	staffTop    = 3*7 + 5 // A3
	staffWidth  = 15
	noteColumn  = 8
)

var letterSteps = map[byte]int{'C': 0, 'D': 1, 'E': 2, 'F': 3, 'G': 4, 'A': 5, 'B': 6}

// staffStep returns the note's vertical position in diatonic steps.
func staffStep(d drill.Display) int {
	return d.Octave*7 + letterSteps[d.Name[0]]
}

func accidentalGlyph(acc string) string {
	switch acc {
	case "b":
		return "♭"
	case "#":
		return "♯"
	default:
		return ""
	}
}

// renderStaff draws a five-line bass staff with the note head and any
// ledger lines it needs. Even steps relative to G2 are lines.
func renderStaff(d drill.Display) string {
	step := staffStep(d)
	top := max(staffTop, step)
	bottom := min(staffBottom, step)

	var rows []string
	for s := top; s >= bottom; s-- {
		cells := make([]string, staffWidth)
		for i := range cells {
			cells[i] = " "
		}
		isLine := (s-staffBottom)%2 == 0
		switch {
		case isLine && s >= staffBottom && s <= staffTop:
			for i := range cells {
				cells[i] = "─"
			}
		case isLine && (s > staffTop && s <= step || s < staffBottom && s >= step):
			for i := noteColumn - 2; i <= noteColumn+2; i++ {
				cells[i] = "─"
			}
		}
		if s == step {
			cells[noteColumn] = "●"
			if glyph := accidentalGlyph(d.Accidental); glyph != "" {
				cells[noteColumn-2] = glyph
			}
		}
		rows = append(rows, runewidth.FillRight(strings.Join(cells, ""), staffWidth))
	}
	return strings.Join(rows, "\n")
}
