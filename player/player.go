package player

import (
	"github.com/jsphweid/hovertone/chord"
	"github.com/jsphweid/hovertone/model"
)

// Scheduler is the part of a synthesis engine the player needs.
type Scheduler interface {
	ScheduleNote(pitch model.Pitch, duration model.Duration, start float64, velocity float64) error
}

// Rand is satisfied by *math/rand.Rand.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Player sounds each note of a chord with its own random length and a
// small random delay, so repeated chords come out as loose, uneven textures.
type Player struct {
	engine    Scheduler
	rand      Rand
	durations []model.Duration
	maxOffset float64
}

func New(engine Scheduler, rand Rand, durations []model.Duration, maxOffset float64) (*Player, error) {
	if len(durations) == 0 {
		return nil, chord.ErrEmptyDurations
	}
	return &Player{
		engine:    engine,
		rand:      rand,
		durations: append([]model.Duration(nil), durations...),
		maxOffset: maxOffset,
	}, nil
}

// Play schedules every pitch of c relative to referenceTime. It stops at
// the first engine error; notes already scheduled stay scheduled.
func (p *Player) Play(c model.Chord, velocity float64, referenceTime float64) error {
	for _, pitch := range c.Pitches {
		duration := p.durations[p.rand.Intn(len(p.durations))]
		offset := p.rand.Float64() * p.maxOffset
		if err := p.engine.ScheduleNote(pitch, duration, referenceTime+offset, velocity); err != nil {
			return err
		}
	}
	return nil
}
