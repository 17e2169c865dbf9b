package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// Pitch and velocity bounds
const (
	MinPitch    uint8 = 0
	MaxPitch    uint8 = 127
	MinVelocity uint8 = 1
	MaxVelocity uint8 = 127
)

// Event is one note occurrence inside a processing block.
// Offset is the position in samples from the start of the block.
type Event struct {
	Pitch    uint8
	Velocity uint8
	Channel  uint8
	Offset   uint32
	NoteOn   bool // false = note-off
}

func (e Event) String() string {
	kind := "NoteOff"
	if e.NoteOn {
		kind = "NoteOn"
	}
	return fmt.Sprintf("%s{ch:%d, note:%d, vel:%d, offset:%d}",
		kind, e.Channel, e.Pitch, e.Velocity, e.Offset)
}

// Message converts the event to a wire message
func (e Event) Message() gomidi.Message {
	if e.NoteOn {
		return gomidi.NoteOn(e.Channel, e.Pitch, e.Velocity)
	}
	return gomidi.NoteOffVelocity(e.Channel, e.Pitch, e.Velocity)
}

// FromMessage parses a note-on/note-off message. A note-on with velocity 0
// is a note-off. Other messages return false.
func FromMessage(msg gomidi.Message, offset uint32) (Event, bool) {
	var channel, key, velocity uint8
	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		return Event{
			Pitch:    key,
			Velocity: velocity,
			Channel:  channel,
			Offset:   offset,
			NoteOn:   velocity > 0,
		}, true
	case msg.GetNoteOff(&channel, &key, &velocity):
		return Event{
			Pitch:    key,
			Velocity: velocity,
			Channel:  channel,
			Offset:   offset,
		}, true
	}
	return Event{}, false
}

// Clone returns a copy of events that shares no storage with the input
func Clone(events []Event) []Event {
	if events == nil {
		return nil
	}
	out := make([]Event, len(events))
	copy(out, events)
	return out
}

// Sorted reports whether events are in non-decreasing offset order
func Sorted(events []Event) bool {
	for i := 1; i < len(events); i++ {
		if events[i].Offset < events[i-1].Offset {
			return false
		}
	}
	return true
}
