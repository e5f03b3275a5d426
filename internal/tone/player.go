package tone

// Player plays tone sequences without blocking the caller.
type Player interface {
	Play(tones []Tone) error
	Close() error
}

// Silent discards every tone.
type Silent struct{}

// Play implements Player.
func (Silent) Play([]Tone) error { return nil }

// Close implements Player.
func (Silent) Close() error { return nil }
