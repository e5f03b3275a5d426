//go:build cgo

package tone

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

var (
	contextOnce sync.Once
	otoContext  *oto.Context
	contextErr  error
)

func sharedContext() (*oto.Context, error) {
	contextOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			contextErr = fmt.Errorf("cannot create oto context: %w", err)
			return
		}
		<-ready
		otoContext = ctx
	})
	return otoContext, contextErr
}

// OtoPlayer plays tones through the system audio device.
type OtoPlayer struct {
	mu      sync.Mutex
	ctx     *oto.Context
	current *oto.Player
}

// NewPlayer opens the audio device.
func NewPlayer() (Player, error) {
	ctx, err := sharedContext()
	if err != nil {
		return nil, err
	}
	return &OtoPlayer{ctx: ctx}, nil
}

// Play stops whatever is sounding and starts tones.
func (p *OtoPlayer) Play(tones []Tone) error {
	pcm := EncodePCM(Render(tones, SampleRate))
	if len(pcm) == 0 {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.stopLocked(); err != nil {
		return err
	}
	p.current = p.ctx.NewPlayer(bytes.NewReader(pcm))
	p.current.Play()
	return nil
}

// Close stops playback.
func (p *OtoPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopLocked()
}

func (p *OtoPlayer) stopLocked() error {
	if p.current == nil {
		return nil
	}
	p.current.Pause()
	err := p.current.Close()
	p.current = nil
	if err != nil {
		return fmt.Errorf("error closing player: %w", err)
	}
	return nil
}
