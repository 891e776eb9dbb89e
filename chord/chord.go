package chord

import (
	"fmt"
	"sort"

	"github.com/jsphweid/hovertone/model"
	"github.com/jsphweid/hovertone/util"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type OnNotes = map[uint8]bool

type reducedEvent struct {
	Offset    int64
	IsNoteOff bool
	Note      uint8
}

// CreateChordKey builds an order independent key like "57-60-63-67".
func CreateChordKey(notes []uint8) string {
	sorted := append([]uint8(nil), notes...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	var res string
	for i, note := range sorted {
		res += fmt.Sprintf("%v", note)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}

func getSnapshot(offset int64, pressed OnNotes) model.Snapshot {
	notes := util.GetKeys(pressed)
	sort.Slice(notes, func(i, j int) bool {
		return notes[i] < notes[j]
	})
	return model.Snapshot{Offset: offset, Notes: notes}
}

// SoundingSets sweeps every note on/off of s and returns the sets of
// simultaneously sounding notes, ordered by time. Silent stretches are
// left out.
func SoundingSets(s *smf.SMF) []model.Snapshot {
	var reducedEvents []reducedEvent

	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			absTime := s.TimeAt(absTicks)
			msg := midi.Message(event.Message)
			var channel, key, velocity uint8
			switch {
			case msg.GetNoteStart(&channel, &key, &velocity):
				reducedEvents = append(reducedEvents, reducedEvent{Offset: absTime, Note: key})
			case msg.GetNoteEnd(&channel, &key):
				reducedEvents = append(reducedEvents, reducedEvent{Offset: absTime, IsNoteOff: true, Note: key})
			}
		}
	}

	// prioritize smaller offset values then note off
	sort.SliceStable(reducedEvents, func(i, j int) bool {
		if reducedEvents[i].Offset != reducedEvents[j].Offset {
			return reducedEvents[i].Offset < reducedEvents[j].Offset
		}
		return reducedEvents[i].IsNoteOff && !reducedEvents[j].IsNoteOff
	})

	// overlapping chords may sound the same note twice, so count
	held := make(map[uint8]int)
	pressed := make(OnNotes)
	var res []model.Snapshot
	for i, evt := range reducedEvents {
		if evt.IsNoteOff {
			if held[evt.Note] > 0 {
				held[evt.Note]--
			}
			if held[evt.Note] == 0 {
				delete(pressed, evt.Note)
			}
		} else {
			held[evt.Note]++
			pressed[evt.Note] = true
		}

		lastAtOffset := i == len(reducedEvents)-1 || reducedEvents[i+1].Offset != evt.Offset
		if lastAtOffset && len(pressed) > 0 {
			res = append(res, getSnapshot(evt.Offset, pressed))
		}
	}
	return res
}
