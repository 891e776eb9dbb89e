package synth

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/jsphweid/hovertone/chord"
	"github.com/jsphweid/hovertone/model"
	recording "github.com/jsphweid/hovertone/midi"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2"
)

type fixedClock struct {
	now float64
}

func (c *fixedClock) Now() float64 {
	return c.now
}

type delayed struct {
	d time.Duration
	f func()
}

type harness struct {
	sent    []midi.Message
	pending []delayed
	opens   int
	sendErr error
}

func (h *harness) open() (sendFunc, error) {
	h.opens++
	return func(msg midi.Message) error {
		if h.sendErr != nil {
			return h.sendErr
		}
		h.sent = append(h.sent, msg)
		return nil
	}, nil
}

func (h *harness) after(d time.Duration, f func()) {
	h.pending = append(h.pending, delayed{d, f})
}

// fire runs pending callbacks in delay order.
func (h *harness) fire() {
	for len(h.pending) > 0 {
		next := 0
		for i, p := range h.pending {
			if p.d < h.pending[next].d {
				next = i
			}
		}
		p := h.pending[next]
		h.pending = append(h.pending[:next], h.pending[next+1:]...)
		p.f()
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMIDIOutActivateOpensOnce(t *testing.T) {
	h := &harness{}
	m := newMIDIOut(h.open, &fixedClock{}, quietLogger(), h.after)

	assert := assert.New(t)
	assert.NoError(m.Activate())
	assert.NoError(m.Activate())
	assert.Equal(1, h.opens)
}

func TestMIDIOutRequiresActivation(t *testing.T) {
	h := &harness{}
	m := newMIDIOut(h.open, &fixedClock{}, quietLogger(), h.after)

	assert := assert.New(t)
	assert.ErrorIs(m.ScheduleNote("C4", "16n", 0, 0.5), ErrNotActivated)
	assert.ErrorIs(m.SetReverbWetMix(0.5), ErrNotActivated)
	assert.Empty(h.sent)
}

func TestMIDIOutSchedulesNoteOnAndOff(t *testing.T) {
	h := &harness{}
	clock := &fixedClock{now: 1}
	m := newMIDIOut(h.open, clock, quietLogger(), h.after)
	assert.NoError(t, m.Activate())

	assert.NoError(t, m.ScheduleNote("A3", "16n", 1.1, 0.15))

	assert := assert.New(t)
	assert.Empty(h.sent)
	assert.Len(h.pending, 2)
	assert.InDelta(float64(100*time.Millisecond), float64(h.pending[0].d), float64(time.Microsecond))
	assert.InDelta(float64(225*time.Millisecond), float64(h.pending[1].d), float64(time.Microsecond))

	h.fire()
	assert.Equal([]midi.Message{midi.NoteOn(0, 57, 19), midi.NoteOff(0, 57)}, h.sent)
}

func TestMIDIOutImmediateNoteErrorPropagates(t *testing.T) {
	h := &harness{}
	m := newMIDIOut(h.open, &fixedClock{now: 5}, quietLogger(), h.after)
	assert.NoError(t, m.Activate())

	h.sendErr = errors.New("device gone")
	err := m.ScheduleNote("C4", "16n", 5, 0.5)

	assert := assert.New(t)
	assert.EqualError(err, "device gone")
	assert.Empty(h.pending)
}

func TestMIDIOutOverlappingNotesReleaseOnce(t *testing.T) {
	h := &harness{}
	m := newMIDIOut(h.open, &fixedClock{}, quietLogger(), h.after)
	assert.NoError(t, m.Activate())

	assert.NoError(t, m.ScheduleNote("C4", "32n", 0, 0.5))
	assert.NoError(t, m.ScheduleNote("C4", "4n", 0, 0.5))
	h.fire()

	var offs int
	for _, msg := range h.sent {
		var ch, key uint8
		if msg.GetNoteEnd(&ch, &key) {
			offs++
		}
	}
	assert.Equal(t, 1, offs)
}

func TestMIDIOutEffectsAsControllers(t *testing.T) {
	h := &harness{}
	m := newMIDIOut(h.open, &fixedClock{}, quietLogger(), h.after)
	assert.NoError(t, m.Activate())

	assert.NoError(t, m.SetReverbWetMix(0.5))
	assert.NoError(t, m.SetChorusDepth(1.7))

	assert.Equal(t, []midi.Message{
		midi.ControlChange(0, 91, 64),
		midi.ControlChange(0, 93, 127),
	}, h.sent)
}

func TestMIDIOutCloseSilences(t *testing.T) {
	h := &harness{}
	m := newMIDIOut(h.open, &fixedClock{}, quietLogger(), h.after)
	assert.NoError(t, m.Activate())
	assert.NoError(t, m.ScheduleNote("E4", "1m", 0, 0.5))

	assert.NoError(t, m.Close())
	h.fire()

	assert.Equal(t, []midi.Message{midi.NoteOn(0, 64, 64), midi.NoteOff(0, 64)}, h.sent)
}

func TestVelocityByte(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint8(1), velocityByte(0))
	assert.Equal(uint8(19), velocityByte(0.15))
	assert.Equal(uint8(127), velocityByte(1))
	assert.Equal(uint8(127), velocityByte(3))
	assert.Equal(uint8(0), controllerValue(-1))
}

func TestRecorderRoundTrip(t *testing.T) {
	clock := &fixedClock{}
	r := NewRecorder(clock)
	bank := chord.DefaultBank()
	c, _ := bank.Resolve(2)

	for i, p := range c.Pitches {
		assert.NoError(t, r.ScheduleNote(p, "4n", float64(i)*0.01, 0.15))
	}
	clock.now = 0.02
	assert.NoError(t, r.SetReverbWetMix(0.25))
	assert.NoError(t, r.SetChorusDepth(0.55))
	assert.Equal(t, 10, r.Len())

	path := filepath.Join(t.TempDir(), "session.mid")
	assert.NoError(t, r.Save(path))

	s, err := recording.ReadMidiFile(path)
	assert.NoError(t, err)

	sets := chord.SoundingSets(s)
	assert.NotEmpty(t, sets)
	full := sets[len(sets)-1]
	for _, set := range sets {
		if len(set.Notes) > len(full.Notes) {
			full = set
		}
	}
	i, ok := bank.Lookup(full.Notes)
	assert.True(t, ok)
	assert.Equal(t, 2, i)
}

func TestRecorderRejectsBadPitch(t *testing.T) {
	r := NewRecorder(&fixedClock{})
	assert.ErrorIs(t, r.ScheduleNote("X9", "4n", 0, 0.1), chord.ErrInvalidPitch)
	assert.ErrorIs(t, r.ScheduleNote("C4", "4q", 0, 0.1), chord.ErrInvalidDuration)
	assert.Equal(t, 0, r.Len())
}

type countingEngine struct {
	*Recorder
	activations int
	err         error
}

func (c *countingEngine) Activate() error {
	c.activations++
	return c.err
}

func TestTee(t *testing.T) {
	clock := &fixedClock{now: 3}
	a := &countingEngine{Recorder: NewRecorder(clock)}
	b := &countingEngine{Recorder: NewRecorder(clock)}
	tee := Tee{a, b}

	assert := assert.New(t)
	assert.NoError(tee.Activate())
	assert.NoError(tee.ScheduleNote("C4", "8n", 3, 0.2))
	assert.Equal(2, a.Len())
	assert.Equal(2, b.Len())
	assert.Equal(3.0, tee.CurrentTime())

	a.err = errors.New("boom")
	assert.EqualError(tee.Activate(), "boom")
	assert.Equal(1, b.activations)

	assert.Equal(0.0, Tee{}.CurrentTime())
}

func TestLogEngine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := NewLogEngine(&fixedClock{now: 1.5}, logger)

	assert := assert.New(t)
	assert.NoError(e.Activate())
	assert.NoError(e.ScheduleNote(model.Pitch("Eb4"), "8t", 1.6, 0.15))
	assert.Error(e.ScheduleNote(model.Pitch("Z4"), "8t", 1.6, 0.15))
	assert.NoError(e.SetReverbWetMix(0.4))
	assert.Equal(1.5, e.CurrentTime())
	assert.Contains(buf.String(), "pitch=Eb4")
	assert.Contains(buf.String(), "reverb wet")
}
