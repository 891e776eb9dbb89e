package constants

import (
	"os"
	"strings"
	"time"
)

func GetListenAddr() string {
	addr := os.Getenv("HOVERTONE_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

// GetMidiPort returns the name (or substring) of the MIDI output port.
// Empty means no MIDI output.
func GetMidiPort() string {
	return os.Getenv("HOVERTONE_MIDI_PORT")
}

// GetRecordDir returns where session recordings go. Empty disables recording.
func GetRecordDir() string {
	return os.Getenv("RECORD_PATH")
}

func GetAllowedOrigins() []string {
	origins := os.Getenv("HOVERTONE_ORIGINS")
	if origins == "" {
		return []string{"*"}
	}
	var res []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			res = append(res, o)
		}
	}
	return res
}

// Soft dynamics for every chord.
const Velocity = 0.15

const ChorusDepthMin = 0.3
const ChorusDepthMax = 0.8

// MaxNoteOffset bounds the random start delay of each chord note, in seconds.
const MaxNoteOffset = 0.25

const TempoBPM = 120.0

const MidiChannel = 0

// General MIDI effects 1 (reverb send) and effects 3 (chorus send).
const ReverbCC = 91
const ChorusCC = 93

// RestInterval is how long the pointer must be still before a session
// summary is logged and the recording flushed.
const RestInterval = 2 * time.Second
