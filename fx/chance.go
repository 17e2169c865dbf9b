package fx

import "go-midifx/midi"

const chanceProbability = 0

// Chance drops each event unless a random draw passes the probability
type Chance struct {
	unit
	rng *RNG
}

// NewChance creates a Chance that keeps everything
func NewChance() *Chance {
	c := &Chance{rng: NewRNG(seedChance)}
	c.unit = newUnit(KindChance, c,
		NewParam("probability", 100, 0, 100),
	)
	return c
}

// RNG returns the effect's generator
func (c *Chance) RNG() *RNG { return c.rng }

func (c *Chance) transform(events []midi.Event, _, _ float64) []midi.Event {
	prob := c.value(chanceProbability) / 100

	out := make([]midi.Event, 0, len(events))
	for _, e := range events {
		if c.rng.Float64() < prob {
			out = append(out, e)
		}
	}
	return out
}
