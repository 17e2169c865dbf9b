package fx

import (
	"slices"
	"testing"

	"go-midifx/midi"
)

const (
	testSampleRate = 48000.0
	testBPM        = 120.0
)

func noteOn(pitch, velocity uint8, offset uint32) midi.Event {
	return midi.Event{Pitch: pitch, Velocity: velocity, Offset: offset, NoteOn: true}
}

func noteOff(pitch uint8, offset uint32) midi.Event {
	return midi.Event{Pitch: pitch, Velocity: 64, Offset: offset}
}

// testBlock is a mixed batch: chords, note-offs, edge pitches
func testBlock() []midi.Event {
	return []midi.Event{
		noteOn(60, 100, 0),
		noteOn(64, 90, 0),
		noteOn(0, 1, 700),
		noteOff(60, 5000),
		noteOn(127, 127, 11000),
		noteOff(64, 12500),
		noteOn(72, 40, 30000),
	}
}

func allEffects(t *testing.T) []Effect {
	t.Helper()
	var effects []Effect
	for _, k := range Kinds() {
		e, err := New(k)
		if err != nil {
			t.Fatalf("New(%v): %v", k, err)
		}
		effects = append(effects, e)
	}
	return effects
}

func mustSet(t *testing.T, e Effect, name string, value float64) {
	t.Helper()
	if !e.SetParam(name, value) {
		t.Fatalf("%s has no parameter %q", e.Name(), name)
	}
}

func assertEvents(t *testing.T, got, want []midi.Event) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("events mismatch\n got: %v\nwant: %v", got, want)
	}
}

func offsets(events []midi.Event) []uint32 {
	out := make([]uint32, len(events))
	for i, e := range events {
		out[i] = e.Offset
	}
	return out
}
