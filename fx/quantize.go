package fx

import (
	"math"
	"slices"

	"go-midifx/midi"
)

const (
	quantizeGrid = iota
	quantizeStrength
)

// Quantize pulls events toward the nearest grid line
type Quantize struct {
	unit
}

// NewQuantize creates a Quantize snapping fully to quarter notes
func NewQuantize() *Quantize {
	q := &Quantize{}
	q.unit = newUnit(KindQuantize, q,
		NewParam("grid", 4, 1, 32),
		NewParam("strength", 100, 0, 100),
	)
	return q
}

func (q *Quantize) transform(events []midi.Event, sampleRate, bpm float64) []midi.Event {
	strength := q.value(quantizeStrength) / 100
	grid := int64(atLeastOne(GridSamples(SamplesPerBeat(sampleRate, bpm), q.value(quantizeGrid))))

	out := make([]midi.Event, len(events))
	for i, e := range events {
		off := int64(e.Offset)
		nearest := int64(math.Round(float64(off)/float64(grid))) * grid
		shift := int64(math.Round(strength * float64(nearest-off)))
		e.Offset = floorOffset(off + shift)
		out[i] = e
	}

	// Moving toward different grid lines can make neighbours cross
	if midi.Sorted(events) && !midi.Sorted(out) {
		slices.SortStableFunc(out, byOffset)
	}
	return out
}

func byOffset(a, b midi.Event) int {
	switch {
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	}
	return 0
}
