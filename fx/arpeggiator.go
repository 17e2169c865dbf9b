package fx

import (
	"slices"

	"go-midifx/midi"
)

// ArpMode selects the note order of the Arpeggiator
type ArpMode int

const (
	ArpUp ArpMode = iota
	ArpDown
	ArpUpDown
	ArpRandom
	ArpOrder
)

var arpModeNames = [...]string{"Up", "Down", "UpDown", "Random", "Order"}

func (m ArpMode) String() string {
	if m < 0 || int(m) >= len(arpModeNames) {
		return "Order"
	}
	return arpModeNames[m]
}

const (
	arpMode = iota
	arpRate
	arpOctaves
	arpGate
)

const arpVelocity uint8 = 100

// Arpeggiator replaces held chords with a stepped note sequence. Held notes
// persist across blocks until their note-off arrives.
type Arpeggiator struct {
	unit
	held []uint8
	rng  *RNG
}

// NewArpeggiator creates an upward, one-octave, 1/8 arpeggio at 80% gate
func NewArpeggiator() *Arpeggiator {
	a := &Arpeggiator{rng: NewRNG(seedArpeggiator)}
	a.unit = newUnit(KindArpeggiator, a,
		NewParam("mode", 0, 0, 4),
		NewParam("rate", 8, 1, 32),
		NewParam("octaves", 1, 1, 4),
		NewParam("gate", 80, 10, 100),
	)
	return a
}

// Mode returns the current ArpMode
func (a *Arpeggiator) Mode() ArpMode {
	m := ArpMode(uint8(a.value(arpMode)))
	if m > ArpRandom {
		return ArpOrder
	}
	return m
}

// Held returns the currently held pitches in arrival order
func (a *Arpeggiator) Held() []uint8 {
	return slices.Clone(a.held)
}

// RNG returns the effect's generator
func (a *Arpeggiator) RNG() *RNG { return a.rng }

func (a *Arpeggiator) setHeld(held []uint8) {
	a.held = slices.Clone(held)
}

func (a *Arpeggiator) transform(events []midi.Event, sampleRate, bpm float64) []midi.Event {
	for _, e := range events {
		if e.NoteOn {
			if !slices.Contains(a.held, e.Pitch) {
				a.held = append(a.held, e.Pitch)
			}
		} else {
			a.held = slices.DeleteFunc(a.held, func(p uint8) bool { return p == e.Pitch })
		}
	}

	if len(a.held) == 0 {
		return []midi.Event{}
	}

	noteSamples := GridSamples(SamplesPerBeat(sampleRate, bpm), a.value(arpRate))
	gateSamples := uint32(float64(noteSamples) * (a.value(arpGate) / 100))
	sequence := a.sequence(uint8(a.value(arpOctaves)))

	var channel uint8
	if len(events) > 0 {
		channel = events[0].Channel
	}

	out := make([]midi.Event, 0, len(sequence)*2)
	for i, pitch := range sequence {
		offset := noteSamples * uint32(i)
		out = append(out,
			midi.Event{Pitch: pitch, Velocity: arpVelocity, Channel: channel, Offset: offset, NoteOn: true},
			midi.Event{Pitch: pitch, Velocity: 0, Channel: channel, Offset: offset + gateSamples},
		)
	}
	return out
}

func (a *Arpeggiator) sequence(octaves uint8) []uint8 {
	mode := a.Mode()

	sorted := slices.Clone(a.held)
	slices.Sort(sorted)
	if mode == ArpDown {
		slices.Reverse(sorted)
	}

	var seq []uint8
	for oct := 0; oct < int(octaves); oct++ {
		for _, note := range sorted {
			seq = append(seq, uint8(min(int(note)+oct*12, int(midi.MaxPitch))))
		}
	}

	switch mode {
	case ArpUpDown:
		if len(seq) > 2 {
			down := slices.Clone(seq[1 : len(seq)-1])
			slices.Reverse(down)
			seq = append(seq, down...)
		}
	case ArpRandom:
		for i := len(seq) - 1; i > 0; i-- {
			j := a.rng.Intn(i + 1)
			seq[i], seq[j] = seq[j], seq[i]
		}
	}
	return seq
}
