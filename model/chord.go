package model

// Pitch is a symbolic note name such as "Eb4".
type Pitch = string

// Duration is a symbolic rhythmic length such as "16n" or "8t".
type Duration = string

type Notes = []uint8

type Chord struct {
	Name    string
	Pitches []Pitch
}

// Snapshot is the set of notes sounding from Offset (microseconds) on.
type Snapshot struct {
	Offset int64
	Notes  Notes
}
