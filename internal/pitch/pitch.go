// Package pitch converts between note names, pitch classes, and absolute pitches.
package pitch

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidNote is returned for note tokens that do not parse.
var ErrInvalidNote = errors.New("invalid note")

// Class is a pitch without octave, 0 (C) through 11 (B).
type Class int

// Pitch is an absolute semitone index: octave*12 + class.
type Pitch int

// Accidental selects sharp or flat spelling.
type Accidental int

// Accidental preferences.
const (
	Sharp Accidental = iota
	Flat
)

// String implements fmt.Stringer.
func (a Accidental) String() string {
	if a == Flat {
		return "flats"
	}
	return "sharps"
}

var letterClasses = map[byte]Class{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var flatNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// Octave 4 equal-tempered frequencies, A4 = 440 Hz.
var octave4Hz = [12]float64{
	261.63, 277.18, 293.66, 311.13, 329.63, 349.23,
	369.99, 392.00, 415.30, 440.00, 466.16, 493.88,
}

// ParseClass parses a letter A-G followed by at most one '#' or 'b'.
func ParseClass(name string) (Class, error) {
	if len(name) == 0 || len(name) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, name)
	}
	base, ok := letterClasses[name[0]]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, name)
	}
	if len(name) == 1 {
		return base, nil
	}
	switch name[1] {
	case '#':
		return (base + 1) % 12, nil
	case 'b':
		return (base + 11) % 12, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, name)
	}
}

// Spell returns the conventional name of c for the given accidental preference.
func Spell(c Class, acc Accidental) string {
	c = normalize(int(c))
	if acc == Flat {
		return flatNames[c]
	}
	return sharpNames[c]
}

// FromName combines a note name and an octave into an absolute pitch.
func FromName(name string, octave int) (Pitch, error) {
	c, err := ParseClass(name)
	if err != nil {
		return 0, err
	}
	return Pitch(octave*12 + int(c)), nil
}

// ParseNote parses a name with a trailing octave, such as "Bb3" or "F#2".
func ParseNote(s string) (Pitch, error) {
	split := len(s)
	for split > 0 && s[split-1] >= '0' && s[split-1] <= '9' {
		split--
	}
	if split == len(s) || split == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, s)
	}
	octave, err := strconv.Atoi(s[split:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, s)
	}
	p, err := FromName(s[:split], octave)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, s)
	}
	return p, nil
}

// Octave returns floor(p/12).
func (p Pitch) Octave() int {
	return floorDiv(int(p), 12)
}

// Class returns p mod 12.
func (p Pitch) Class() Class {
	return normalize(int(p))
}

// Name returns the spelled name with octave, e.g. "Bb3".
func (p Pitch) Name(acc Accidental) string {
	return Spell(p.Class(), acc) + strconv.Itoa(p.Octave())
}

// Frequency returns the equal-tempered frequency in Hz.
func (p Pitch) Frequency() float64 {
	return octave4Hz[p.Class()] * math.Pow(2, float64(p.Octave()-4))
}

// HasAccidental reports whether the spelled name carries a sharp or flat.
func HasAccidental(c Class) bool {
	return len(sharpNames[normalize(int(c))]) > 1
}

func normalize(v int) Class {
	return Class(((v % 12) + 12) % 12)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
