package search

import (
	"time"

	"github.com/kailas-cloud/stash/internal/domain/search/state"
)

// Clock supplies the current time for recency scoring.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now returns f().
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Observer is notified after every published state transition.
// It runs synchronously on the goroutine that caused the transition.
type Observer func(from, to state.State)

// Recorder receives search telemetry.
type Recorder interface {
	ObserveSearch(outcome string, duration time.Duration, candidates int)
	SetContentSize(n int)
}

// Search outcomes reported to Recorder.
const (
	OutcomeResults    = "results"
	OutcomeEmpty      = "empty"
	OutcomeIdle       = "idle"
	OutcomeSuperseded = "superseded"
	OutcomeCanceled   = "canceled"
)

type nopRecorder struct{}

func (nopRecorder) ObserveSearch(string, time.Duration, int) {}
func (nopRecorder) SetContentSize(int)                       {}
