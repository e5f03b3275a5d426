// Package sampler draws practice pitches from a key-filtered range.
package sampler

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/valvedrill/internal/keysig"
	"github.com/verte-zerg/valvedrill/internal/pitch"
)

// ErrNoEligibleNotes is returned when a key and range leave nothing to draw.
var ErrNoEligibleNotes = errors.New("no eligible notes")

// Sampler produces random pitches.
type Sampler struct {
	rnd *rand.Rand
}

// New returns a Sampler seeded with the current time.
func New() *Sampler {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Sampler.
func NewWithSeed(seed int64) *Sampler {
	return &Sampler{rnd: rand.New(rand.NewSource(seed))}
}

// eligibleCapHint covers the whole fingering table.
const eligibleCapHint = 32

// Eligible lists pitches in [low, high] whose class belongs to key, ascending.
func Eligible(key keysig.Key, low, high pitch.Pitch) []pitch.Pitch {
	if high < low {
		return nil
	}
	out := make([]pitch.Pitch, 0, eligibleCapHint)
	for p := low; ; p++ {
		if key.Contains(p.Class()) {
			out = append(out, p)
		}
		if p == high {
			return out
		}
	}
}

// Sample draws uniformly from Eligible(key, r.Low, r.High).
func (s *Sampler) Sample(key keysig.Key, r Range) (pitch.Pitch, error) {
	pool := Eligible(key, r.Low, r.High)
	if len(pool) == 0 {
		return 0, fmt.Errorf("%w: key %s, range %s", ErrNoEligibleNotes, key, r)
	}
	return pool[s.rnd.Intn(len(pool))], nil
}

// SampleWeighted draws with weight 1+factor for pitches in weak.
func (s *Sampler) SampleWeighted(key keysig.Key, r Range, weak map[pitch.Pitch]struct{}, factor float64) (pitch.Pitch, error) {
	pool := Eligible(key, r.Low, r.High)
	if len(pool) == 0 {
		return 0, fmt.Errorf("%w: key %s, range %s", ErrNoEligibleNotes, key, r)
	}
	if len(weak) == 0 || factor <= 0 {
		return pool[s.rnd.Intn(len(pool))], nil
	}
	weights := make([]float64, len(pool))
	total := 0.0
	for i, p := range pool {
		w := 1.0
		if _, ok := weak[p]; ok {
			w += factor
		}
		weights[i] = w
		total += w
	}
	target := s.rnd.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if target < acc {
			return pool[i], nil
		}
	}
	return pool[len(pool)-1], nil
}
