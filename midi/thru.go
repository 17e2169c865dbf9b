package midi

import (
	"context"
	"time"

	"go-midifx/debug"
)

// BlockFunc transforms one block of live events
type BlockFunc func(events []Event) []Event

// Thru turns a live note stream into fixed-length blocks, runs each block
// through Process and plays the result on Send, keeping the in-block
// offsets. Output lags input by one block.
type Thru struct {
	In         <-chan Timed
	Process    BlockFunc
	Send       SendFunc
	SampleRate float64
	BlockSize  uint32
}

// Period is the wall-clock length of one block
func (t *Thru) Period() time.Duration {
	if t.SampleRate <= 0 || t.BlockSize == 0 {
		return time.Millisecond
	}
	return time.Duration(float64(t.BlockSize) / t.SampleRate * float64(time.Second))
}

// Run collects and flushes blocks until ctx is done or In is closed
func (t *Thru) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.Period())
	defer ticker.Stop()

	var pending []Timed
	blockStart := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-t.In:
			if !ok {
				return nil
			}
			pending = append(pending, ev)
		case now := <-ticker.C:
			batch := Block(pending, blockStart, t.SampleRate)
			pending = pending[:0]
			blockStart = now

			out := batch
			if t.Process != nil {
				out = t.Process(batch)
			}
			if len(batch) > 0 || len(out) > 0 {
				debug.LogEvery(100, "thru", "block in=%d out=%d", len(batch), len(out))
			}
			t.schedule(out)
		}
	}
}

// Block converts arrival times into sample offsets from start. Arrivals
// before start land at offset 0.
func Block(timed []Timed, start time.Time, sampleRate float64) []Event {
	events := make([]Event, 0, len(timed))
	for _, tm := range timed {
		e := tm.Event
		d := tm.At.Sub(start)
		if d < 0 {
			d = 0
		}
		e.Offset = uint32(d.Seconds() * sampleRate)
		events = append(events, e)
	}
	return events
}

func (t *Thru) schedule(events []Event) {
	if t.Send == nil {
		return
	}
	Schedule(t.Send, events, t.SampleRate)
}

// Schedule sends offset-0 events at once and the rest on timers, so a
// block keeps its internal timing on the wire
func Schedule(send SendFunc, events []Event, sampleRate float64) {
	for _, e := range events {
		if e.Offset == 0 || sampleRate <= 0 {
			deliver(send, e)
			continue
		}
		delay := time.Duration(float64(e.Offset) / sampleRate * float64(time.Second))
		time.AfterFunc(delay, func() { deliver(send, e) })
	}
}

func deliver(send SendFunc, e Event) {
	if err := send(e.Message()); err != nil {
		debug.Log("midi", "send %v: %v", e, err)
	}
}
