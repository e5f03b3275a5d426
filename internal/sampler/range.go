package sampler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/valvedrill/internal/pitch"
)

// ErrInvalidRange is returned for unknown presets or malformed bounds.
var ErrInvalidRange = errors.New("invalid range")

// Range is an inclusive pitch interval.
type Range struct {
	Name string
	Low  pitch.Pitch
	High pitch.Pitch
}

// String implements fmt.Stringer.
func (r Range) String() string {
	bounds := fmt.Sprintf("%s-%s", r.Low.Name(pitch.Flat), r.High.Name(pitch.Flat))
	if r.Name == "" {
		return bounds
	}
	return r.Name + " (" + bounds + ")"
}

// Label is the stable identifier used when persisting results: the preset
// name, or the bounds for custom ranges.
func (r Range) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("%s-%s", r.Low.Name(pitch.Flat), r.High.Name(pitch.Flat))
}

// Presets in display order. The first three are the difficulty ladder.
var presets = []Range{
	{Name: "novice", Low: 34, High: 46},
	{Name: "intermediate", Low: 34, High: 53},
	{Name: "advanced", Low: 29, High: 58},
	{Name: "low", Low: 29, High: 35},
	{Name: "mid", Low: 36, High: 46},
	{Name: "high", Low: 48, High: 58},
	{Name: "full", Low: 29, High: 58},
}

// Presets returns the named ranges.
func Presets() []Range {
	return append([]Range(nil), presets...)
}

// ParseRange accepts a preset name or "LOW-HIGH" note names such as "F2-Bb3".
func ParseRange(value string) (Range, error) {
	value = strings.TrimSpace(value)
	for _, r := range presets {
		if r.Name == value {
			return r, nil
		}
	}
	lowStr, highStr, ok := strings.Cut(value, "-")
	if !ok {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, value)
	}
	low, err := pitch.ParseNote(strings.TrimSpace(lowStr))
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: %w", ErrInvalidRange, value, err)
	}
	high, err := pitch.ParseNote(strings.TrimSpace(highStr))
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: %w", ErrInvalidRange, value, err)
	}
	if low > high {
		return Range{}, fmt.Errorf("%w: %q: low bound above high bound", ErrInvalidRange, value)
	}
	return Range{Low: low, High: high}, nil
}
