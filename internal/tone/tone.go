// Package tone describes and synthesizes the drill's feedback sounds.
package tone

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/verte-zerg/valvedrill/internal/pitch"
)

// SampleRate used for synthesis and playback.
const SampleRate = 44100

// Wave selects the oscillator shape.
type Wave int

// Oscillator shapes.
const (
	Sine Wave = iota
	// Sawtooth is amplitude-modulated by a 5 Hz LFO.
	Sawtooth
)

// Tone is a single frequency held for a duration.
type Tone struct {
	Freq     float64
	Duration time.Duration
	Wave     Wave
}

// Correct is the reward tone: the answered pitch as a sine for 500 ms.
func Correct(p pitch.Pitch) []Tone {
	return []Tone{{Freq: p.Frequency(), Duration: 500 * time.Millisecond, Wave: Sine}}
}

// Incorrect is a 200 Hz wobbling sawtooth for one second.
func Incorrect() []Tone {
	return []Tone{{Freq: 200, Duration: time.Second, Wave: Sawtooth}}
}

// Flourish is the end-of-session arpeggio C5, E5, G5.
func Flourish() []Tone {
	step := 200 * time.Millisecond
	return []Tone{
		{Freq: 523.25, Duration: step, Wave: Sine},
		{Freq: 659.25, Duration: step, Wave: Sine},
		{Freq: 783.99, Duration: step, Wave: Sine},
	}
}

const (
	volume  = 0.5
	lfoFreq = 5.0
)

// Render synthesizes tones back to back as mono 16-bit samples.
func Render(tones []Tone, sampleRate int) []int16 {
	total := 0
	for _, t := range tones {
		total += sampleCount(t.Duration, sampleRate)
	}
	out := make([]int16, 0, total)
	for _, t := range tones {
		n := sampleCount(t.Duration, sampleRate)
		for i := 0; i < n; i++ {
			sec := float64(i) / float64(sampleRate)
			var v float64
			switch t.Wave {
			case Sawtooth:
				saw := 2 * (sec*t.Freq - math.Floor(0.5+sec*t.Freq))
				lfo := 0.5 * math.Sin(2*math.Pi*lfoFreq*sec)
				v = saw * (1 + lfo) * volume
			default:
				v = math.Sin(2*math.Pi*t.Freq*sec) * volume
			}
			v = math.Max(-1, math.Min(1, v))
			out = append(out, int16(v*math.MaxInt16))
		}
	}
	return out
}

// EncodePCM converts samples to little-endian bytes.
func EncodePCM(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}

func sampleCount(d time.Duration, sampleRate int) int {
	if d <= 0 || sampleRate <= 0 {
		return 0
	}
	return int(int64(d) * int64(sampleRate) / int64(time.Second))
}
