package fx

import "go-midifx/midi"

const (
	swingAmount = iota
	swingGrid
)

// Swing delays events that fall on odd grid cells
type Swing struct {
	unit
}

// NewSwing creates a Swing on eighth notes with a neutral amount
func NewSwing() *Swing {
	s := &Swing{}
	s.unit = newUnit(KindSwing, s,
		NewParam("amount", 50, 0, 100),
		NewParam("grid", 8, 4, 16),
	)
	return s
}

// Ratio is the swing ratio for the current amount (0.5 = straight)
func (s *Swing) Ratio() float64 {
	amount := s.value(swingAmount) / 100
	return 0.5 + (amount-0.5)*0.33
}

func (s *Swing) transform(events []midi.Event, sampleRate, bpm float64) []midi.Event {
	grid := atLeastOne(GridSamples(SamplesPerBeat(sampleRate, bpm), s.value(swingGrid)))
	shift := int64((s.Ratio() - 0.5) * float64(grid))

	out := make([]midi.Event, len(events))
	for i, e := range events {
		if (e.Offset/grid)%2 == 1 {
			e.Offset = floorOffset(int64(e.Offset) + shift)
		}
		out[i] = e
	}
	return out
}
