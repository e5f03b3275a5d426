package tone

import (
	"math"
	"testing"
	"time"

	"github.com/verte-zerg/valvedrill/internal/pitch"
)

func TestCorrectUsesPitchFrequency(t *testing.T) {
	tones := Correct(pitch.Pitch(57))
	if len(tones) != 1 || tones[0].Freq != 440 || tones[0].Duration != 500*time.Millisecond {
		t.Fatalf("unexpected correct tone %+v", tones)
	}
}

func TestFlourishAscends(t *testing.T) {
	tones := Flourish()
	if len(tones) != 3 {
		t.Fatalf("expected three tones, got %d", len(tones))
	}
	for i := 1; i < len(tones); i++ {
		if tones[i].Freq <= tones[i-1].Freq {
			t.Fatalf("flourish must ascend: %+v", tones)
		}
	}
}

func TestRenderLength(t *testing.T) {
	samples := Render(Flourish(), 1000)
	if len(samples) != 600 {
		t.Fatalf("expected 600 samples, got %d", len(samples))
	}
	if len(EncodePCM(samples)) != 1200 {
		t.Fatalf("expected 2 bytes per sample")
	}
}

func TestRenderProducesSignal(t *testing.T) {
	for _, tones := range [][]Tone{Correct(41), Incorrect()} {
		samples := Render(tones, SampleRate)
		var peak float64
		for _, s := range samples {
			peak = math.Max(peak, math.Abs(float64(s)))
		}
		if peak == 0 {
			t.Fatalf("expected non-zero output for %+v", tones)
		}
		if peak > math.MaxInt16 {
			t.Fatalf("sample out of range")
		}
	}
}

func TestSilentPlayer(t *testing.T) {
	var p Player = Silent{}
	if err := p.Play(Incorrect()); err != nil {
		t.Fatalf("silent play: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("silent close: %v", err)
	}
}
