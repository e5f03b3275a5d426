//go:build cgo

package midiin

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Registers the rtmidi driver.

	"github.com/verte-zerg/valvedrill/internal/fingering"
)

// Listen opens the first input port whose name matches port and forwards
// mapped valves to send. The returned stop function closes the driver.
func Listen(port string, m Mapper, send func(fingering.Valve)) (func(), error) {
	in, err := midi.FindInPort(port)
	if err != nil {
		return nil, fmt.Errorf("failed to find MIDI input %q: %w", port, err)
	}
	stop, err := midi.ListenTo(in, func(msg midi.Message, _ int32) {
		if v, ok := m.Valve(msg); ok {
			send(v)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to listen on MIDI input %q: %w", port, err)
	}
	return func() {
		stop()
		midi.CloseDriver()
	}, nil
}
