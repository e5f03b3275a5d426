// Package midiin maps MIDI controller notes to valve presses.
package midiin

import (
	"gitlab.com/gomidi/midi/v2"

	"github.com/verte-zerg/valvedrill/internal/fingering"
)

// DefaultBase is middle C; C4..E4 map to valves 0..4.
const DefaultBase uint8 = 60

// Mapper translates note-on messages into valves.
type Mapper struct {
	Base uint8
}

// Valve returns the valve for a note-start message on any channel.
func (m Mapper) Valve(msg midi.Message) (fingering.Valve, bool) {
	var channel, key, velocity uint8
	if !msg.GetNoteStart(&channel, &key, &velocity) {
		return 0, false
	}
	if key < m.Base || key > m.Base+uint8(fingering.V4) {
		return 0, false
	}
	return fingering.Valve(key - m.Base), true
}
