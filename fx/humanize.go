package fx

import "go-midifx/midi"

const (
	humanizeTiming = iota
	humanizeVelocity
)

// Humanize jitters timing and velocity with the effect's own generator
type Humanize struct {
	unit
	rng *RNG
}

// NewHumanize creates a Humanize with ±10 ms and ±10 velocity
func NewHumanize() *Humanize {
	h := &Humanize{rng: NewRNG(seedHumanize)}
	h.unit = newUnit(KindHumanize, h,
		NewParam("timing", 10, 0, 50),
		NewParam("velocity", 10, 0, 30),
	)
	return h
}

// RNG returns the effect's generator
func (h *Humanize) RNG() *RNG { return h.rng }

func (h *Humanize) transform(events []midi.Event, sampleRate, _ float64) []midi.Event {
	timingSamples := int64(h.value(humanizeTiming) / 1000 * sampleRate)
	velocityRange := h.value(humanizeVelocity)

	out := make([]midi.Event, len(events))
	for i, e := range events {
		// Draw order is timing then velocity
		timeShift := int64(h.rng.Signed() * float64(timingSamples))
		velShift := int(h.rng.Signed() * velocityRange)

		e.Offset = floorOffset(int64(e.Offset) + timeShift)
		e.Velocity = clampVelocity(int(e.Velocity) + velShift)
		out[i] = e
	}
	return out
}
