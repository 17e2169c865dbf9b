package fx

import (
	"errors"
	"fmt"

	"go-midifx/midi"
)

// MaxEffects is the number of slots in one chain
const MaxEffects = 8

var (
	ErrChainFull    = errors.New("effect chain is full")
	ErrNoSuchEffect = errors.New("no effect at index")
	ErrNoSuchParam  = errors.New("no such parameter")
)

// Chain runs effects in series: the output of effect i is the input of
// effect i+1. A Chain is not safe for concurrent use; its owner serializes
// processing and edits.
type Chain struct {
	effects   []Effect
	bypassAll bool
}

// NewChain creates a chain holding the given effects in order. Effects
// past MaxEffects are dropped; use Add to see ErrChainFull.
func NewChain(effects ...Effect) *Chain {
	c := &Chain{}
	for _, e := range effects {
		c.Add(e)
	}
	return c
}

// Process runs one block through every effect in order
func (c *Chain) Process(events []midi.Event, sampleRate, bpm float64) []midi.Event {
	if c.bypassAll {
		return events
	}
	for _, e := range c.effects {
		events = e.Process(events, sampleRate, bpm)
	}
	return events
}

// Len returns the number of effects
func (c *Chain) Len() int { return len(c.effects) }

// At returns the effect at index i (nil if out of range)
func (c *Chain) At(i int) Effect {
	if i < 0 || i >= len(c.effects) {
		return nil
	}
	return c.effects[i]
}

// Effects returns the effects in order. The slice is a copy; the effects
// are not.
func (c *Chain) Effects() []Effect {
	out := make([]Effect, len(c.effects))
	copy(out, c.effects)
	return out
}

// Add appends an effect
func (c *Chain) Add(e Effect) error {
	return c.Insert(len(c.effects), e)
}

// Insert places an effect at index i, shifting later effects down
func (c *Chain) Insert(i int, e Effect) error {
	if len(c.effects) >= MaxEffects {
		return ErrChainFull
	}
	if i < 0 || i > len(c.effects) {
		return fmt.Errorf("%w: %d", ErrNoSuchEffect, i)
	}
	c.effects = append(c.effects, nil)
	copy(c.effects[i+1:], c.effects[i:])
	c.effects[i] = e
	return nil
}

// Remove deletes and returns the effect at index i
func (c *Chain) Remove(i int) (Effect, bool) {
	if i < 0 || i >= len(c.effects) {
		return nil, false
	}
	e := c.effects[i]
	c.effects = append(c.effects[:i], c.effects[i+1:]...)
	return e, true
}

// Move relocates the effect at from so that it ends up at index to
func (c *Chain) Move(from, to int) bool {
	if from < 0 || from >= len(c.effects) || to < 0 || to >= len(c.effects) {
		return false
	}
	if from == to {
		return true
	}
	e, _ := c.Remove(from)
	c.effects = append(c.effects, nil)
	copy(c.effects[to+1:], c.effects[to:])
	c.effects[to] = e
	return true
}

// ToggleBypass flips the bypass flag of effect i and returns the new state
func (c *Chain) ToggleBypass(i int) bool {
	e := c.At(i)
	if e == nil {
		return false
	}
	e.SetBypass(!e.Bypassed())
	return e.Bypassed()
}

// SetParam edits a parameter of effect i. The value is clamped.
func (c *Chain) SetParam(i int, name string, value float64) error {
	e := c.At(i)
	if e == nil {
		return fmt.Errorf("%w: %d", ErrNoSuchEffect, i)
	}
	if !e.SetParam(name, value) {
		return fmt.Errorf("%w: %s.%s", ErrNoSuchParam, e.Name(), name)
	}
	return nil
}

// BypassAll reports whether the whole chain is bypassed
func (c *Chain) BypassAll() bool { return c.bypassAll }

// SetBypassAll bypasses or enables the whole chain
func (c *Chain) SetBypassAll(bypass bool) { c.bypassAll = bypass }

// Clone returns an independent deep copy, including generator state
func (c *Chain) Clone() (*Chain, error) {
	data, err := c.MarshalJSON()
	if err != nil {
		return nil, err
	}
	out := &Chain{}
	if err := out.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return out, nil
}
