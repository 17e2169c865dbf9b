package fx

import (
	"slices"
	"testing"

	"go-midifx/midi"
)

func chord(pitches ...uint8) []midi.Event {
	var out []midi.Event
	for _, p := range pitches {
		out = append(out, noteOn(p, 100, 0))
	}
	return out
}

func arpPitches(events []midi.Event) []uint8 {
	var out []uint8
	for _, e := range events {
		if e.NoteOn {
			out = append(out, e.Pitch)
		}
	}
	return out
}

func TestArpeggiatorModes(t *testing.T) {
	tests := []struct {
		mode    ArpMode
		octaves float64
		want    []uint8
	}{
		{ArpUp, 1, []uint8{60, 64, 67}},
		{ArpDown, 1, []uint8{67, 64, 60}},
		{ArpUpDown, 1, []uint8{60, 64, 67, 64}},
		{ArpOrder, 1, []uint8{60, 64, 67}},
		{ArpUp, 2, []uint8{60, 64, 67, 72, 76, 79}},
		{ArpRandom, 1, []uint8{64, 67, 60}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			a := NewArpeggiator()
			mustSet(t, a, "mode", float64(tt.mode))
			mustSet(t, a, "octaves", tt.octaves)

			got := arpPitches(a.Process(chord(67, 60, 64), testSampleRate, testBPM))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestArpeggiatorTiming(t *testing.T) {
	a := NewArpeggiator()

	// 1/8 at 120 bpm is 12000 samples, 80% gate is 9600
	got := a.Process(chord(60, 64), testSampleRate, testBPM)
	want := []midi.Event{
		{Pitch: 60, Velocity: 100, Offset: 0, NoteOn: true},
		{Pitch: 60, Velocity: 0, Offset: 9600},
		{Pitch: 64, Velocity: 100, Offset: 12000, NoteOn: true},
		{Pitch: 64, Velocity: 0, Offset: 21600},
	}
	assertEvents(t, got, want)
}

func TestArpeggiatorHoldsAcrossBlocks(t *testing.T) {
	a := NewArpeggiator()
	a.Process(chord(60, 64), testSampleRate, testBPM)

	// An empty block keeps arpeggiating the held chord
	if got := arpPitches(a.Process(nil, testSampleRate, testBPM)); !slices.Equal(got, []uint8{60, 64}) {
		t.Errorf("Expected held chord, got %v", got)
	}

	a.Process([]midi.Event{noteOff(60, 0)}, testSampleRate, testBPM)
	if got := a.Held(); !slices.Equal(got, []uint8{64}) {
		t.Errorf("Expected [64] held, got %v", got)
	}

	a.Process([]midi.Event{noteOff(64, 0)}, testSampleRate, testBPM)
	if got := a.Process(nil, testSampleRate, testBPM); len(got) != 0 {
		t.Errorf("Expected silence with nothing held, got %v", got)
	}
}

func TestArpeggiatorIgnoresRepeatedNoteOn(t *testing.T) {
	a := NewArpeggiator()
	a.Process(chord(60, 60, 62), testSampleRate, testBPM)
	if got := a.Held(); !slices.Equal(got, []uint8{60, 62}) {
		t.Errorf("Expected [60 62], got %v", got)
	}
}

func TestArpeggiatorOctaveCap(t *testing.T) {
	a := NewArpeggiator()
	mustSet(t, a, "octaves", 3)

	got := arpPitches(a.Process(chord(120), testSampleRate, testBPM))
	if !slices.Equal(got, []uint8{120, 127, 127}) {
		t.Errorf("Expected [120 127 127], got %v", got)
	}
}

func TestArpeggiatorUsesInputChannel(t *testing.T) {
	a := NewArpeggiator()
	in := []midi.Event{{Pitch: 60, Velocity: 90, Channel: 5, NoteOn: true}}
	for _, e := range a.Process(in, testSampleRate, testBPM) {
		if e.Channel != 5 {
			t.Fatalf("Expected channel 5, got %v", e)
		}
	}
}

func TestArpeggiatorRandomReproducible(t *testing.T) {
	a, b := NewArpeggiator(), NewArpeggiator()
	mustSet(t, a, "mode", float64(ArpRandom))
	mustSet(t, b, "mode", float64(ArpRandom))
	mustSet(t, a, "octaves", 2)
	mustSet(t, b, "octaves", 2)

	in := chord(60, 63, 67, 70)
	for i := 0; i < 5; i++ {
		assertEvents(t, a.Process(in, testSampleRate, testBPM), b.Process(in, testSampleRate, testBPM))
	}
}
