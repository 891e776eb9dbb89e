package chord

import (
	"errors"
	"fmt"
	"math"

	"github.com/jsphweid/hovertone/model"
	"github.com/jsphweid/hovertone/util"
)

var ErrEmptyBank = errors.New("chord bank is empty")

var ErrIndexOutOfRange = errors.New("chord index out of range")

// Bank is an ordered, immutable set of chords. Index order follows the
// vertical axis of the surface, top to bottom.
type Bank struct {
	chords []model.Chord
	keys   map[string]int
}

func NewBank(chords ...model.Chord) (*Bank, error) {
	if len(chords) == 0 {
		return nil, ErrEmptyBank
	}
	b := &Bank{
		chords: make([]model.Chord, len(chords)),
		keys:   make(map[string]int),
	}
	for i, c := range chords {
		if len(c.Pitches) == 0 {
			return nil, fmt.Errorf("chord %d (%s) has no pitches", i, c.Name)
		}
		notes, err := Notes(c)
		if err != nil {
			return nil, fmt.Errorf("chord %d (%s): %w", i, c.Name, err)
		}
		b.chords[i] = model.Chord{Name: c.Name, Pitches: append([]model.Pitch(nil), c.Pitches...)}
		key := CreateChordKey(notes)
		if _, ok := b.keys[key]; !ok {
			b.keys[key] = i
		}
	}
	return b, nil
}

// DefaultBank holds dark, dissonant voicings.
func DefaultBank() *Bank {
	b, err := NewBank(
		model.Chord{Name: "A diminished", Pitches: []model.Pitch{"A3", "C4", "Eb4", "G4"}},
		model.Chord{Name: "B diminished 7", Pitches: []model.Pitch{"B3", "D4", "F4", "A4"}},
		model.Chord{Name: "C diminished 7", Pitches: []model.Pitch{"C4", "Eb4", "Gb4", "Bb4"}},
		model.Chord{Name: "D diminished", Pitches: []model.Pitch{"D3", "F4", "Ab4", "C5"}},
		model.Chord{Name: "E minor 7", Pitches: []model.Pitch{"E4", "G4", "Bb4", "D5"}},
		model.Chord{Name: "F diminished 7", Pitches: []model.Pitch{"F3", "Ab4", "C5", "Eb5"}},
		model.Chord{Name: "G half-diminished", Pitches: []model.Pitch{"G4", "Bb4", "Db5", "F5"}},
	)
	if err != nil {
		panic("default chord bank is invalid: " + err.Error())
	}
	return b
}

func (b *Bank) Len() int {
	return len(b.chords)
}

func (b *Bank) Resolve(index int) (model.Chord, error) {
	if index < 0 || index >= len(b.chords) {
		return model.Chord{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(b.chords))
	}
	return b.chords[index], nil
}

// IndexFor turns a continuous position ratio in [0, Len()] into a chord
// index. A ratio of exactly Len() belongs to the last chord.
func (b *Bank) IndexFor(ratio float64) int {
	if math.IsNaN(ratio) {
		return 0
	}
	f := util.Clamp(math.Floor(ratio), 0, float64(len(b.chords)-1))
	return int(f)
}

// Lookup finds the bank chord made of exactly these notes, in any order.
func (b *Bank) Lookup(notes model.Notes) (int, bool) {
	i, ok := b.keys[CreateChordKey(notes)]
	return i, ok
}
