package synth

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/jsphweid/hovertone/chord"
	"github.com/jsphweid/hovertone/constants"
	"github.com/jsphweid/hovertone/model"
	"github.com/jsphweid/hovertone/util"
	"gitlab.com/gomidi/midi/v2"
)

type sendFunc = func(msg midi.Message) error

// MIDIOut plays through a MIDI output port. The port is opened on
// Activate; reverb and chorus are sent as effect-depth controllers.
type MIDIOut struct {
	clock     Clock
	logger    *slog.Logger
	open      func() (sendFunc, error)
	afterFunc func(d time.Duration, f func())
	channel   uint8
	bpm       float64

	mu       sync.Mutex
	send     sendFunc
	closed   bool
	sounding map[uint8]int
}

// NewMIDIOut targets the first output port whose name contains portName.
// A driver must be registered, e.g. by importing rtmididrv.
func NewMIDIOut(portName string, clock Clock, logger *slog.Logger) *MIDIOut {
	open := func() (sendFunc, error) {
		out, err := midi.FindOutPort(portName)
		if err != nil {
			return nil, fmt.Errorf("can't find MIDI output %q: %w", portName, err)
		}
		send, err := midi.SendTo(out)
		if err != nil {
			return nil, fmt.Errorf("can't open MIDI output %q: %w", portName, err)
		}
		logger.Info("midi output opened", "port", out.String())
		return send, nil
	}
	return newMIDIOut(open, clock, logger, func(d time.Duration, f func()) { time.AfterFunc(d, f) })
}

func newMIDIOut(open func() (sendFunc, error), clock Clock, logger *slog.Logger, afterFunc func(time.Duration, func())) *MIDIOut {
	return &MIDIOut{
		clock:     clock,
		logger:    logger,
		open:      open,
		afterFunc: afterFunc,
		channel:   constants.MidiChannel,
		bpm:       constants.TempoBPM,
		sounding:  make(map[uint8]int),
	}
}

func (m *MIDIOut) Activate() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.send != nil {
		return nil
	}
	send, err := m.open()
	if err != nil {
		return err
	}
	m.send = send
	return nil
}

func (m *MIDIOut) ScheduleNote(pitch model.Pitch, duration model.Duration, start float64, velocity float64) error {
	key, err := chord.ParsePitch(pitch)
	if err != nil {
		return err
	}
	length, err := chord.DurationSeconds(duration, m.bpm)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.send == nil {
		m.mu.Unlock()
		return ErrNotActivated
	}
	m.mu.Unlock()

	delay := seconds(start - m.clock.Now())
	on := midi.NoteOn(m.channel, key, velocityByte(velocity))
	off := midi.NoteOff(m.channel, key)

	if delay <= 0 {
		if err := m.noteOn(key, on); err != nil {
			return err
		}
	} else {
		m.afterFunc(delay, func() {
			if err := m.noteOn(key, on); err != nil {
				m.logger.Warn("midi: note on failed", "pitch", pitch, "err", err)
			}
		})
	}
	m.afterFunc(delay+seconds(length), func() {
		if err := m.noteOff(key, off); err != nil {
			m.logger.Warn("midi: note off failed", "pitch", pitch, "err", err)
		}
	})
	return nil
}

func (m *MIDIOut) SetReverbWetMix(v float64) error {
	return m.sendNow(midi.ControlChange(m.channel, constants.ReverbCC, controllerValue(v)))
}

func (m *MIDIOut) SetChorusDepth(v float64) error {
	return m.sendNow(midi.ControlChange(m.channel, constants.ChorusCC, controllerValue(v)))
}

func (m *MIDIOut) CurrentTime() float64 {
	return m.clock.Now()
}

// Close silences every sounding note. Notes still pending are dropped.
func (m *MIDIOut) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	if m.send == nil {
		return nil
	}
	var firstErr error
	for key := range m.sounding {
		if err := m.send(midi.NoteOff(m.channel, key)); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(m.sounding, key)
	}
	return firstErr
}

func (m *MIDIOut) sendNow(msg midi.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.send == nil {
		return ErrNotActivated
	}
	if m.closed {
		return nil
	}
	return m.send(msg)
}

func (m *MIDIOut) noteOn(key uint8, msg midi.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	if err := m.send(msg); err != nil {
		return err
	}
	m.sounding[key]++
	return nil
}

// noteOff only releases a key once every overlapping note on it is done,
// otherwise a short note would cut off a longer one.
func (m *MIDIOut) noteOff(key uint8, msg midi.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.sounding[key] == 0 {
		return nil
	}
	m.sounding[key]--
	if m.sounding[key] > 0 {
		return nil
	}
	delete(m.sounding, key)
	return m.send(msg)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// velocityByte maps [0,1] to 1..127. Zero is avoided since a note on
// with velocity zero is a note off.
func velocityByte(v float64) uint8 {
	return uint8(util.Clamp(math.Round(v*127), 1, 127))
}

func controllerValue(v float64) uint8 {
	return uint8(util.Clamp(math.Round(v*127), 0, 127))
}
