package drill

import "time"

// Session is the running score of one timed drill.
type Session struct {
	Remaining time.Duration
	Score     int
	Best      int
	Attempts  int
	Over      bool
}

// NewSession starts a session with the given budget and persisted best score.
func NewSession(budget time.Duration, best int) Session {
	return Session{Remaining: budget, Best: best}
}

// Tick consumes d from the time budget.
func (s Session) Tick(d time.Duration) Session {
	if s.Over {
		return s
	}
	s.Remaining -= d
	if s.Remaining <= 0 {
		s.Remaining = 0
		s.Over = true
	}
	return s
}

// Apply records a verdict.
func (s Session) Apply(v Verdict) Session {
	if s.Over {
		return s
	}
	s.Attempts++
	if v == Correct {
		s.Score++
	}
	return s
}

// Finish ends the session. The second result is true when the score beat
// the previous best, which is then replaced.
func (s Session) Finish() (Session, bool) {
	s.Over = true
	s.Remaining = 0
	if s.Score > s.Best {
		s.Best = s.Score
		return s, true
	}
	return s, false
}

// Accuracy is correct answers over attempts.
func (s Session) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Score) / float64(s.Attempts)
}
