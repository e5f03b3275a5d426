package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/valvedrill/internal/drill"
	"github.com/verte-zerg/valvedrill/internal/pitch"
)

func display(p pitch.Pitch, acc pitch.Accidental) drill.Display {
	return drill.Round{Pitch: p, Spelling: acc}.Display()
}

func TestRenderStaffInside(t *testing.T) {
	// F3 sits on the fourth line of the bass staff.
	rows := strings.Split(renderStaff(display(41, pitch.Flat)), "\n")
	if len(rows) != staffTop-staffBottom+1 {
		t.Fatalf("expected %d rows, got %d", staffTop-staffBottom+1, len(rows))
	}
	noteRow := staffTop - (3*7 + 3)
	if !strings.Contains(rows[noteRow], "●") {
		t.Fatalf("expected note head on row %d:\n%s", noteRow, strings.Join(rows, "\n"))
	}
	for i, row := range rows {
		if i != noteRow && strings.Contains(row, "●") {
			t.Fatalf("unexpected note head on row %d", i)
		}
	}
}

func TestRenderStaffLedgerAndAccidental(t *testing.T) {
	// Bb4 needs ledger lines above the staff.
	rows := strings.Split(renderStaff(display(58, pitch.Flat)), "\n")
	step := 4*7 + 6
	if len(rows) != step-staffBottom+1 {
		t.Fatalf("expected %d rows, got %d", step-staffBottom+1, len(rows))
	}
	if !strings.Contains(rows[0], "●") || !strings.Contains(rows[0], "♭") {
		t.Fatalf("expected flat note head on top row, got %q", rows[0])
	}
	// C4 ledger line.
	ledger := rows[step-(4*7+0)]
	if strings.TrimSpace(ledger) != "─────" {
		t.Fatalf("expected short ledger line, got %q", ledger)
	}
}

func TestRenderStaffSharpMarker(t *testing.T) {
	out := renderStaff(display(42, pitch.Sharp))
	if !strings.Contains(out, "♯") {
		t.Fatalf("expected sharp marker:\n%s", out)
	}
	if strings.Contains(renderStaff(display(43, pitch.Sharp)), "♯") {
		t.Fatalf("natural note should not carry a marker")
	}
}
