package fx

import "go-midifx/midi"

const transposeSemitones = 0

// Transpose shifts every event's pitch by a semitone offset
type Transpose struct {
	unit
}

// NewTranspose creates a Transpose at 0 semitones
func NewTranspose() *Transpose {
	t := &Transpose{}
	t.unit = newUnit(KindTranspose, t,
		NewParam("semitones", 0, -48, 48),
	)
	return t
}

func (t *Transpose) transform(events []midi.Event, _, _ float64) []midi.Event {
	semitones := int(t.value(transposeSemitones))

	out := make([]midi.Event, len(events))
	for i, e := range events {
		e.Pitch = clampPitch(int(e.Pitch) + semitones)
		out[i] = e
	}
	return out
}
