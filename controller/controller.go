package controller

import (
	"fmt"

	"github.com/jsphweid/hovertone/chord"
	"github.com/jsphweid/hovertone/constants"
	"github.com/jsphweid/hovertone/model"
	"github.com/jsphweid/hovertone/synth"
	"github.com/jsphweid/hovertone/util"
)

type State int

const (
	Idle State = iota
	Engaged
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Engaged:
		return "engaged"
	}
	return "unknown"
}

// ChordPlayer sounds a chord against a reference time.
type ChordPlayer interface {
	Play(c model.Chord, velocity float64, referenceTime float64) error
}

type Config struct {
	Velocity       float64
	ChorusDepthMin float64
	ChorusDepthMax float64
}

func DefaultConfig() Config {
	return Config{
		Velocity:       constants.Velocity,
		ChorusDepthMin: constants.ChorusDepthMin,
		ChorusDepthMax: constants.ChorusDepthMax,
	}
}

// Controller turns pointer events into chords and effect settings.
// Vertical position picks the chord, horizontal position drives reverb
// and chorus. It is not safe for concurrent use.
type Controller struct {
	engine synth.Engine
	player ChordPlayer
	bank   *chord.Bank
	config Config
	state  State
}

func New(engine synth.Engine, player ChordPlayer, bank *chord.Bank, config Config) *Controller {
	return &Controller{
		engine: engine,
		player: player,
		bank:   bank,
		config: config,
	}
}

func (c *Controller) State() State {
	return c.state
}

// Engage activates the engine on the first call and reports whether it
// did. Once engaged the controller stays engaged. A failed activation
// leaves it idle so the next engagement tries again.
func (c *Controller) Engage() (bool, error) {
	if c.state == Engaged {
		return false, nil
	}
	if err := c.engine.Activate(); err != nil {
		return false, fmt.Errorf("activate audio: %w", err)
	}
	c.state = Engaged
	return true, nil
}

// Move maps one pointer sample. While idle it does nothing.
func (c *Controller) Move(p model.PointerSample) (model.Trigger, error) {
	var t model.Trigger
	if c.state != Engaged {
		return t, nil
	}

	yRatio, err := util.MapRange(p.Y, 0, p.Height, 0, float64(c.bank.Len()))
	if err != nil {
		return t, fmt.Errorf("surface height %v: %w", p.Height, err)
	}
	t.ChordIndex = c.bank.IndexFor(yRatio)
	ch, err := c.bank.Resolve(t.ChordIndex)
	if err != nil {
		return t, err
	}
	t.ChordName = ch.Name
	t.Pitches = ch.Pitches

	if err := c.player.Play(ch, c.config.Velocity, c.engine.CurrentTime()); err != nil {
		return t, err
	}
	t.Played = true

	t.ReverbMix, err = util.MapRange(p.X, 0, p.Width, 0, 1)
	if err != nil {
		return t, fmt.Errorf("surface width %v: %w", p.Width, err)
	}
	if err := c.engine.SetReverbWetMix(t.ReverbMix); err != nil {
		return t, err
	}

	t.ChorusDepth, _ = util.MapRange(p.X, 0, p.Width, c.config.ChorusDepthMin, c.config.ChorusDepthMax)
	if err := c.engine.SetChorusDepth(t.ChorusDepth); err != nil {
		return t, err
	}
	return t, nil
}
