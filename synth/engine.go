package synth

import (
	"errors"
	"time"

	"github.com/jsphweid/hovertone/model"
)

var ErrNotActivated = errors.New("engine not activated")

// Engine is everything the mapping core asks of a synthesizer. Scheduling
// is fire-and-forget: the engine owns the timing of scheduled notes and
// never reports back when they finish.
type Engine interface {
	// Activate prepares the engine for output. Calling it again is harmless.
	Activate() error
	ScheduleNote(pitch model.Pitch, duration model.Duration, start float64, velocity float64) error
	SetReverbWetMix(v float64) error
	SetChorusDepth(v float64) error
	// CurrentTime is a monotonic clock in seconds, the reference for start times.
	CurrentTime() float64
}

type Clock interface {
	Now() float64
}

type monotonicClock struct {
	start time.Time
}

// NewClock returns a clock counting seconds from now.
func NewClock() Clock {
	return &monotonicClock{start: time.Now()}
}

func (c *monotonicClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// Tee fans every request out to all engines in order. The first error
// stops the fan-out and is returned.
type Tee []Engine

func (t Tee) Activate() error {
	for _, e := range t {
		if err := e.Activate(); err != nil {
			return err
		}
	}
	return nil
}

func (t Tee) ScheduleNote(pitch model.Pitch, duration model.Duration, start float64, velocity float64) error {
	for _, e := range t {
		if err := e.ScheduleNote(pitch, duration, start, velocity); err != nil {
			return err
		}
	}
	return nil
}

func (t Tee) SetReverbWetMix(v float64) error {
	for _, e := range t {
		if err := e.SetReverbWetMix(v); err != nil {
			return err
		}
	}
	return nil
}

func (t Tee) SetChorusDepth(v float64) error {
	for _, e := range t {
		if err := e.SetChorusDepth(v); err != nil {
			return err
		}
	}
	return nil
}

func (t Tee) CurrentTime() float64 {
	if len(t) == 0 {
		return 0
	}
	return t[0].CurrentTime()
}
