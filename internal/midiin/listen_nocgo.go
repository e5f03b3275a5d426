//go:build !cgo

package midiin

import (
	"errors"

	"github.com/verte-zerg/valvedrill/internal/fingering"
)

// Listen reports that MIDI input needs a cgo build.
func Listen(string, Mapper, func(fingering.Valve)) (func(), error) {
	return nil, errors.New("MIDI input requires a cgo build")
}
