package synth

import (
	"log/slog"

	"github.com/jsphweid/hovertone/chord"
	"github.com/jsphweid/hovertone/model"
)

// LogEngine makes no sound. It validates and logs every request, which
// is handy when no MIDI port is around.
type LogEngine struct {
	clock  Clock
	logger *slog.Logger
}

func NewLogEngine(clock Clock, logger *slog.Logger) *LogEngine {
	return &LogEngine{clock: clock, logger: logger}
}

func (e *LogEngine) Activate() error {
	e.logger.Info("audio activated")
	return nil
}

func (e *LogEngine) ScheduleNote(pitch model.Pitch, duration model.Duration, start float64, velocity float64) error {
	if _, err := chord.ParsePitch(pitch); err != nil {
		return err
	}
	e.logger.Debug("note", "pitch", pitch, "duration", duration, "start", start, "velocity", velocity)
	return nil
}

func (e *LogEngine) SetReverbWetMix(v float64) error {
	e.logger.Debug("reverb wet", "value", v)
	return nil
}

func (e *LogEngine) SetChorusDepth(v float64) error {
	e.logger.Debug("chorus depth", "value", v)
	return nil
}

func (e *LogEngine) CurrentTime() float64 {
	return e.clock.Now()
}
