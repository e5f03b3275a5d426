// Package model defines shared data structures.
package model

import "time"

// Config defines drill settings.
type Config struct {
	Key          string
	Range        string
	Duration     time.Duration
	CaptureDelay time.Duration
	FocusWeak    bool
	WeakTop      int
	WeakFactor   float64
	WeakWindow   int
	MIDIIn       string
	Sound        bool
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Key         string
	Range       string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionStats captures a completed drill session.
type SessionStats struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Key        string
	Range      string
	Score      int
	Attempts   int
	DurationMs int64
}

// NoteStats stores per-pitch results for a session.
type NoteStats struct {
	Pitch        int
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// NoteAggregate aggregates pitch results across sessions.
type NoteAggregate struct {
	Pitch        int
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID  int64
	EndedAt    time.Time
	Key        string
	Range      string
	Score      int
	Attempts   int
	DurationMs int64
}
