package chord

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jsphweid/hovertone/model"
)

var ErrInvalidPitch = errors.New("invalid pitch")

var semitones = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// ParsePitch converts a note name like "Eb4" or "C#-1" into a MIDI note number.
func ParsePitch(p model.Pitch) (uint8, error) {
	if len(p) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPitch, p)
	}
	semi, ok := semitones[p[0]]
	if !ok {
		return 0, fmt.Errorf("%w: %q has no note letter", ErrInvalidPitch, p)
	}
	rest := p[1:]
	switch rest[0] {
	case '#':
		semi++
		rest = rest[1:]
	case 'b':
		semi--
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("%w: %q has no octave", ErrInvalidPitch, p)
	}
	n := (octave+1)*12 + semi
	if n < 0 || n > 127 {
		return 0, fmt.Errorf("%w: %q is outside the MIDI range", ErrInvalidPitch, p)
	}
	return uint8(n), nil
}

func PitchName(note uint8) string {
	return fmt.Sprintf("%s%d", noteNames[note%12], int(note/12)-1)
}

// Notes resolves every pitch of c to a MIDI note number, in chord order.
func Notes(c model.Chord) (model.Notes, error) {
	res := make(model.Notes, 0, len(c.Pitches))
	for _, p := range c.Pitches {
		n, err := ParsePitch(p)
		if err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, nil
}
