package fx

import (
	"slices"

	"go-midifx/midi"
)

const (
	echoDelay = iota
	echoRepeats
	echoDecay
)

// Echo repeats note-ons at a tempo-synced interval with decaying velocity
type Echo struct {
	unit
}

// NewEcho creates an Echo of three quarter-note repeats at 70% decay
func NewEcho() *Echo {
	e := &Echo{}
	e.unit = newUnit(KindEcho, e,
		NewParam("delay", 4, 1, 16),
		NewParam("repeats", 3, 1, 8),
		NewParam("decay", 70, 0, 100),
	)
	return e
}

func (e *Echo) transform(events []midi.Event, sampleRate, bpm float64) []midi.Event {
	delay := int64(GridSamples(SamplesPerBeat(sampleRate, bpm), e.value(echoDelay)))
	repeats := int(e.value(echoRepeats))
	decay := e.value(echoDecay) / 100

	out := make([]midi.Event, len(events), len(events)*(1+repeats))
	copy(out, events)

	for _, ev := range events {
		if !ev.NoteOn {
			continue
		}

		vel := float64(ev.Velocity)
		for i := 1; i <= repeats; i++ {
			vel *= decay
			if vel < 1 {
				break
			}
			out = append(out, midi.Event{
				Pitch:    ev.Pitch,
				Velocity: uint8(vel), // truncated, not rounded
				Channel:  ev.Channel,
				Offset:   floorOffset(int64(ev.Offset) + delay*int64(i)),
				NoteOn:   true,
			})
		}
	}

	slices.SortStableFunc(out, byOffset)
	return out
}
