// Package drill judges fingerings and tracks round and session state.
package drill

import "github.com/verte-zerg/valvedrill/internal/fingering"

// Verdict is the outcome of one round.
type Verdict int

// Verdicts.
const (
	Incorrect Verdict = iota
	Correct
)

// String implements fmt.Stringer.
func (v Verdict) String() string {
	if v == Correct {
		return "correct"
	}
	return "incorrect"
}

// Evaluate compares the captured valves to the expected fingering as sets.
// There is no partial credit.
func Evaluate(captured, expected fingering.Fingering) Verdict {
	if len(expected) == 0 {
		return Incorrect
	}
	if fingering.Of(captured...).Equal(expected) {
		return Correct
	}
	return Incorrect
}
