package pitch

import (
	"errors"
	"math"
	"testing"
)

func TestSpellRoundTrip(t *testing.T) {
	for c := Class(0); c < 12; c++ {
		for _, acc := range []Accidental{Sharp, Flat} {
			name := Spell(c, acc)
			got, err := ParseClass(name)
			if err != nil {
				t.Fatalf("parse %q: %v", name, err)
			}
			if got != c {
				t.Fatalf("round trip %d via %q (%s) gave %d", c, name, acc, got)
			}
		}
	}
}

func TestParseClassRejects(t *testing.T) {
	for _, name := range []string{"", "H", "c", "C##", "Bbb", "C+", "Cx", "#"} {
		if _, err := ParseClass(name); !errors.Is(err, ErrInvalidNote) {
			t.Fatalf("expected ErrInvalidNote for %q, got %v", name, err)
		}
	}
}

func TestParseClassEdgeAccidentals(t *testing.T) {
	cases := map[string]Class{"Cb": 11, "E#": 5, "Fb": 4, "B#": 0, "Bb": 10, "F#": 6}
	for name, want := range cases {
		got, err := ParseClass(name)
		if err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
		if got != want {
			t.Fatalf("%q: expected %d, got %d", name, want, got)
		}
	}
}

func TestFromNameAndArithmetic(t *testing.T) {
	p, err := FromName("F", 3)
	if err != nil {
		t.Fatalf("from name: %v", err)
	}
	if p != 41 {
		t.Fatalf("expected 41, got %d", p)
	}
	if p.Octave() != 3 || p.Class() != 5 {
		t.Fatalf("unexpected octave/class %d/%d", p.Octave(), p.Class())
	}
	if p.Name(Flat) != "F3" {
		t.Fatalf("unexpected name %q", p.Name(Flat))
	}
	if _, err := FromName("X", 3); !errors.Is(err, ErrInvalidNote) {
		t.Fatalf("expected ErrInvalidNote, got %v", err)
	}
}

func TestParseNote(t *testing.T) {
	cases := map[string]Pitch{"Bb2": 34, "F2": 29, "Bb4": 58, "C#3": 37, "A4": 57}
	for s, want := range cases {
		got, err := ParseNote(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if got != want {
			t.Fatalf("%q: expected %d, got %d", s, want, got)
		}
	}
	for _, s := range []string{"", "Bb", "3", "H2", "Bbb2"} {
		if _, err := ParseNote(s); !errors.Is(err, ErrInvalidNote) {
			t.Fatalf("expected ErrInvalidNote for %q, got %v", s, err)
		}
	}
}

func TestFrequency(t *testing.T) {
	cases := []struct {
		p    Pitch
		want float64
	}{
		{57, 440.0},
		{45, 220.0},
		{34, 116.54},
		{41, 174.615},
	}
	for _, tc := range cases {
		if got := tc.p.Frequency(); math.Abs(got-tc.want) > 0.01 {
			t.Fatalf("pitch %d: expected %.3f Hz, got %.3f", tc.p, tc.want, got)
		}
	}
}

func TestHasAccidental(t *testing.T) {
	if HasAccidental(0) || !HasAccidental(10) {
		t.Fatalf("unexpected accidental detection")
	}
}
