package midiin

import (
	"testing"

	"gitlab.com/gomidi/midi/v2"

	"github.com/verte-zerg/valvedrill/internal/fingering"
)

func TestMapperValve(t *testing.T) {
	m := Mapper{Base: DefaultBase}
	for _, tc := range []struct {
		msg  midi.Message
		want fingering.Valve
		ok   bool
	}{
		{midi.NoteOn(0, 60, 100), fingering.Open, true},
		{midi.NoteOn(3, 62, 90), fingering.V2, true},
		{midi.NoteOn(0, 64, 1), fingering.V4, true},
		{midi.NoteOn(0, 65, 100), 0, false},
		{midi.NoteOn(0, 59, 100), 0, false},
		{midi.NoteOn(0, 61, 0), 0, false},
		{midi.NoteOff(0, 61), 0, false},
	} {
		got, ok := m.Valve(tc.msg)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("%v: expected %v/%v, got %v/%v", tc.msg, tc.want, tc.ok, got, ok)
		}
	}
}
