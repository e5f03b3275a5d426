package drill

import (
	"fmt"
	"time"

	"github.com/verte-zerg/valvedrill/internal/fingering"
	"github.com/verte-zerg/valvedrill/internal/keysig"
	"github.com/verte-zerg/valvedrill/internal/pitch"
	"github.com/verte-zerg/valvedrill/internal/sampler"
)

// Engine draws rounds for a fixed key and range.
type Engine struct {
	key     keysig.Key
	rng     sampler.Range
	sampler *sampler.Sampler
	lastID  uint64

	weak       map[pitch.Pitch]struct{}
	weakFactor float64
}

// NewEngine returns an Engine. The range must lie inside the fingering table.
func NewEngine(key keysig.Key, r sampler.Range, s *sampler.Sampler) (*Engine, error) {
	if !fingering.InDomain(r.Low, r.High) {
		return nil, fmt.Errorf("%w: %s is outside the fingering table %s-%s", sampler.ErrInvalidRange, r,
			fingering.Low.Name(pitch.Flat), fingering.High.Name(pitch.Flat))
	}
	if len(sampler.Eligible(key, r.Low, r.High)) == 0 {
		return nil, fmt.Errorf("%w: key %s, range %s", sampler.ErrNoEligibleNotes, key, r)
	}
	return &Engine{key: key, rng: r, sampler: s}, nil
}

// Key returns the engine's key signature.
func (e *Engine) Key() keysig.Key { return e.key }

// Range returns the engine's sampling range.
func (e *Engine) Range() sampler.Range { return e.rng }

// SetWeak biases future draws toward the given pitches.
func (e *Engine) SetWeak(weak map[pitch.Pitch]struct{}, factor float64) {
	e.weak = weak
	e.weakFactor = factor
}

// NextRound draws a pitch and returns a fresh Idle round with a new ID.
func (e *Engine) NextRound(now time.Time) (Round, error) {
	p, err := e.sampler.SampleWeighted(e.key, e.rng, e.weak, e.weakFactor)
	if err != nil {
		return Round{}, err
	}
	expected, err := fingering.Lookup(p)
	if err != nil {
		return Round{}, err
	}
	e.lastID++
	return Round{
		ID:       e.lastID,
		Pitch:    p,
		Spelling: e.key.Preference(),
		Expected: expected,
		State:    Idle,
		ShownAt:  now,
	}, nil
}
