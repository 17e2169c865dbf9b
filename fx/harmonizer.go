package fx

import "go-midifx/midi"

const (
	harmonizerInterval1 = iota
	harmonizerInterval2
	harmonizerVoices
)

// Harmonizer adds up to two fixed-interval voices to every note-on
type Harmonizer struct {
	unit
}

// NewHarmonizer creates a Harmonizer stacking a major third and a fifth
func NewHarmonizer() *Harmonizer {
	h := &Harmonizer{}
	h.unit = newUnit(KindHarmonizer, h,
		NewParam("interval1", 4, -12, 12),
		NewParam("interval2", 7, -12, 12),
		NewParam("voices", 2, 0, 2),
	)
	return h
}

func (h *Harmonizer) transform(events []midi.Event, _, _ float64) []midi.Event {
	intervals := [2]int{
		int(h.value(harmonizerInterval1)),
		int(h.value(harmonizerInterval2)),
	}
	voices := min(int(h.value(harmonizerVoices)), len(intervals))

	out := make([]midi.Event, len(events), len(events)*(1+voices))
	copy(out, events)

	for _, ev := range events {
		if !ev.NoteOn {
			continue
		}
		for v := 0; v < voices; v++ {
			voice := ev
			voice.Pitch = clampPitch(int(ev.Pitch) + intervals[v])
			out = append(out, voice)
		}
	}
	return out
}
