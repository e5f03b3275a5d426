// Package keysig derives diatonic sets and spelling preferences from key signatures.
package keysig

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/valvedrill/internal/pitch"
)

// ErrInvalidKey is returned for unsupported or unparseable key names.
var ErrInvalidKey = errors.New("invalid key")

// ChromaticName selects the unconstrained, fully chromatic mode.
const ChromaticName = "chromatic"

var majorIntervals = [7]int{2, 2, 1, 2, 2, 2, 1}

var flatKeys = map[string]struct{}{
	"F": {}, "Bb": {}, "Eb": {}, "Ab": {}, "Db": {}, "Gb": {}, "Cb": {},
}

var supported = []string{
	"C", "G", "D", "A", "E", "B", "F#", "C#",
	"F", "Bb", "Eb", "Ab", "Db", "Gb", "Cb",
	ChromaticName,
}

// Key is a major key signature or the chromatic mode.
type Key struct {
	Name      string
	Tonic     pitch.Class
	Chromatic bool

	members [12]bool
}

// Names lists the supported key names.
func Names() []string {
	return append([]string(nil), supported...)
}

// Parse resolves a key name. Unknown names fail instead of defaulting.
func Parse(name string) (Key, error) {
	if name == ChromaticName {
		k := Key{Name: name, Chromatic: true}
		for i := range k.members {
			k.members[i] = true
		}
		return k, nil
	}
	if !isSupported(name) {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, name)
	}
	tonic, err := pitch.ParseClass(name)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, name)
	}
	k := Key{Name: name, Tonic: tonic}
	for _, c := range Diatonic(tonic) {
		k.members[c] = true
	}
	return k, nil
}

// Diatonic returns the seven major-scale classes starting at tonic.
func Diatonic(tonic pitch.Class) []pitch.Class {
	out := make([]pitch.Class, 0, len(majorIntervals))
	cur := int(tonic)
	for _, step := range majorIntervals {
		out = append(out, pitch.Class(((cur%12)+12)%12))
		cur += step
	}
	return out
}

// Contains reports whether c belongs to the key.
func (k Key) Contains(c pitch.Class) bool {
	if k.Chromatic {
		return true
	}
	if c < 0 || c > 11 {
		return false
	}
	return k.members[c]
}

// Classes returns the eligible classes in ascending order.
func (k Key) Classes() []pitch.Class {
	out := make([]pitch.Class, 0, 12)
	for c := pitch.Class(0); c < 12; c++ {
		if k.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// Preference returns Flat for flat-side keys and Sharp for everything else.
func (k Key) Preference() pitch.Accidental {
	return Preference(k.Name)
}

// Preference looks name up in the fixed flat-key list.
func Preference(name string) pitch.Accidental {
	if _, ok := flatKeys[name]; ok {
		return pitch.Flat
	}
	return pitch.Sharp
}

// String implements fmt.Stringer.
func (k Key) String() string {
	return k.Name
}

func isSupported(name string) bool {
	for _, s := range supported {
		if s == name {
			return true
		}
	}
	return false
}
