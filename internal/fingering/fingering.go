// Package fingering holds the canonical valve fingering for each supported pitch.
package fingering

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/verte-zerg/valvedrill/internal/pitch"
)

// ErrMissingFingering is returned for pitches outside the table.
var ErrMissingFingering = errors.New("missing fingering")

// ErrInvalidValve is returned for symbols outside the valve alphabet.
var ErrInvalidValve = errors.New("invalid valve")

// Valve is one symbol of the fingering alphabet. Open means no valves pressed.
type Valve int

// Valve symbols.
const (
	Open Valve = iota
	V1
	V2
	V3
	V4
)

// Table bounds: F2 through Bb4.
const (
	Low  pitch.Pitch = 29
	High pitch.Pitch = 58
)

// ParseValve parses "0".."4".
func ParseValve(symbol string) (Valve, error) {
	n, err := strconv.Atoi(symbol)
	if err != nil || n < int(Open) || n > int(V4) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValve, symbol)
	}
	return Valve(n), nil
}

// String implements fmt.Stringer.
func (v Valve) String() string {
	return strconv.Itoa(int(v))
}

// Fingering is a sorted, duplicate-free set of valves.
type Fingering []Valve

// Of normalizes valves into a Fingering.
func Of(valves ...Valve) Fingering {
	out := make(Fingering, 0, len(valves))
	seen := map[Valve]struct{}{}
	for _, v := range valves {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Equal compares two fingerings as sets.
func (f Fingering) Equal(other Fingering) bool {
	a := Of(f...)
	b := Of(other...)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Contains reports whether v is part of f.
func (f Fingering) Contains(v Valve) bool {
	for _, x := range f {
		if x == v {
			return true
		}
	}
	return false
}

// String renders valves joined by dashes, e.g. "1-2".
func (f Fingering) String() string {
	parts := make([]string, 0, len(f))
	for _, v := range Of(f...) {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, "-")
}

// Compensating four-valve fingerings only; one entry per pitch.
var table = map[pitch.Pitch]Fingering{
	29: {V4},     // F2
	30: {V2, V3}, // F#2
	31: {V1, V2}, // G2
	32: {V1},     // Ab2
	33: {V2},     // A2
	34: {Open},   // Bb2
	35: {V2, V4}, // B2

	36: {V4},     // C3
	37: {V2, V3}, // Db3
	38: {V1, V2}, // D3
	39: {V1},     // Eb3
	40: {V2},     // E3
	41: {Open},   // F3
	42: {V2, V3}, // Gb3
	43: {V1, V2}, // G3
	44: {V1},     // Ab3
	45: {V2},     // A3
	46: {Open},   // Bb3
	47: {V1, V2}, // B3

	48: {V1},     // C4
	49: {V2},     // Db4
	50: {Open},   // D4
	51: {V1},     // Eb4
	52: {V2},     // E4
	53: {Open},   // F4
	54: {V2, V3}, // Gb4
	55: {V1, V2}, // G4
	56: {V1},     // Ab4
	57: {V2},     // A4
	58: {Open},   // Bb4
}

// Lookup returns the canonical fingering for p.
func Lookup(p pitch.Pitch) (Fingering, error) {
	f, ok := table[p]
	if !ok {
		return nil, fmt.Errorf("%w: pitch %d", ErrMissingFingering, p)
	}
	return append(Fingering(nil), f...), nil
}

// InDomain reports whether the table covers every pitch in [low, high].
func InDomain(low, high pitch.Pitch) bool {
	return low >= Low && high <= High && low <= high
}
