package model

// PointerSample is one movement event relative to the tracked surface.
type PointerSample struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Trigger reports what a movement event produced.
type Trigger struct {
	Played      bool    `json:"played"`
	ChordIndex  int     `json:"chord_index"`
	ChordName   string  `json:"chord_name,omitempty"`
	Pitches     []Pitch `json:"pitches,omitempty"`
	ReverbMix   float64 `json:"reverb_mix"`
	ChorusDepth float64 `json:"chorus_depth"`
}
