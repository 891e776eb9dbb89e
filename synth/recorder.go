package synth

import (
	"math"
	"sort"
	"sync"

	"github.com/jsphweid/hovertone/chord"
	"github.com/jsphweid/hovertone/constants"
	"github.com/jsphweid/hovertone/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const ticksPerQuarter = 960

type timedMsg struct {
	at  float64
	seq int
	msg midi.Message
}

// Recorder keeps everything it is asked to play and can write it out as a
// Standard MIDI File.
type Recorder struct {
	clock   Clock
	bpm     float64
	channel uint8

	mu     sync.Mutex
	events []timedMsg
	seq    int
}

func NewRecorder(clock Clock) *Recorder {
	return &Recorder{clock: clock, bpm: constants.TempoBPM, channel: constants.MidiChannel}
}

func (r *Recorder) Activate() error {
	return nil
}

func (r *Recorder) ScheduleNote(pitch model.Pitch, duration model.Duration, start float64, velocity float64) error {
	key, err := chord.ParsePitch(pitch)
	if err != nil {
		return err
	}
	length, err := chord.DurationSeconds(duration, r.bpm)
	if err != nil {
		return err
	}
	r.add(start, midi.NoteOn(r.channel, key, velocityByte(velocity)))
	r.add(start+length, midi.NoteOff(r.channel, key))
	return nil
}

func (r *Recorder) SetReverbWetMix(v float64) error {
	r.add(r.clock.Now(), midi.ControlChange(r.channel, constants.ReverbCC, controllerValue(v)))
	return nil
}

func (r *Recorder) SetChorusDepth(v float64) error {
	r.add(r.clock.Now(), midi.ControlChange(r.channel, constants.ChorusCC, controllerValue(v)))
	return nil
}

func (r *Recorder) CurrentTime() float64 {
	return r.clock.Now()
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func (r *Recorder) add(at float64, msg midi.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, timedMsg{at: at, seq: r.seq, msg: msg})
	r.seq++
}

// SMF renders the recording so far as a single track file.
func (r *Recorder) SMF() *smf.SMF {
	r.mu.Lock()
	events := append([]timedMsg(nil), r.events...)
	r.mu.Unlock()

	sort.Slice(events, func(i, j int) bool {
		if events[i].at != events[j].at {
			return events[i].at < events[j].at
		}
		return events[i].seq < events[j].seq
	})

	ticksPerSecond := ticksPerQuarter * r.bpm / 60

	var track smf.Track
	track.Add(0, smf.MetaTempo(r.bpm))
	var last uint32
	for _, evt := range events {
		abs := uint32(math.Round(math.Max(evt.at, 0) * ticksPerSecond))
		track.Add(abs-last, evt.msg)
		last = abs
	}
	track.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)
	s.Add(track)
	return s
}

func (r *Recorder) Save(path string) error {
	return r.SMF().WriteFile(path)
}
