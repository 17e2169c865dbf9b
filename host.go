package main

import (
	"context"
	"time"

	"go-midifx/debug"
	"go-midifx/midi"
	"go-midifx/sequencer"
)

// Host drives the engine from a wall-clock block timer and plays the
// processed blocks on a MIDI output
type Host struct {
	Engine    *sequencer.Engine
	Send      midi.SendFunc // nil = process without output
	BlockSize uint32
}

func (h *Host) period() time.Duration {
	sr := h.Engine.Transport().SampleRate
	if sr == 0 || h.BlockSize == 0 {
		return time.Millisecond
	}
	return time.Duration(float64(h.BlockSize) / float64(sr) * float64(time.Second))
}

// Run processes one block per period until ctx is done
func (h *Host) Run(ctx context.Context) {
	ticker := time.NewTicker(h.period())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.block()
		}
	}
}

func (h *Host) block() {
	if !h.Engine.Transport().Playing {
		return
	}
	sr := float64(h.Engine.Transport().SampleRate)
	for _, out := range h.Engine.ProcessBlock(h.BlockSize) {
		if h.Send != nil && len(out.Events) > 0 {
			midi.Schedule(h.Send, out.Events, sr)
		}
	}
}

// Thru plays live input through the first track's chain
func (h *Host) Thru(in <-chan midi.Timed) *midi.Thru {
	return &midi.Thru{
		In: in,
		Process: func(events []midi.Event) []midi.Event {
			id, ok := h.Engine.FirstTrack()
			if !ok {
				return events
			}
			out, err := h.Engine.ProcessLive(id, events)
			if err != nil {
				debug.Log("thru", "%v", err)
				return nil
			}
			return out
		},
		Send:       h.Send,
		SampleRate: float64(h.Engine.Transport().SampleRate),
		BlockSize:  h.BlockSize,
	}
}
