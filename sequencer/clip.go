package sequencer

import (
	"slices"

	"go-midifx/fx"
	"go-midifx/midi"
)

// DefaultPPQ is the tick resolution of new clips
const DefaultPPQ uint16 = 480

// noteOffVelocity is the release velocity of clip note-offs
const noteOffVelocity uint8 = 64

// ClipID identifies a clip within an engine
type ClipID uint64

// Note is one note of a clip, timed in ticks from the clip start
type Note struct {
	Pitch         uint8  `json:"pitch"`
	Velocity      uint8  `json:"velocity"`
	StartTick     uint64 `json:"start"`
	DurationTicks uint64 `json:"duration"`
}

// EndTick returns start + duration
func (n Note) EndTick() uint64 {
	return n.StartTick + n.DurationTicks
}

// Clip is a run of notes placed on the timeline
type Clip struct {
	ID            ClipID `json:"id"`
	Name          string `json:"name,omitempty"`
	StartSample   uint64 `json:"startSample"`
	LengthSamples uint64 `json:"lengthSamples"`
	PPQ           uint16 `json:"ppq"`
	Notes         []Note `json:"notes"` // sorted by StartTick
}

// NewClip creates an empty clip at the default resolution
func NewClip(startSample, lengthSamples uint64) *Clip {
	return &Clip{
		StartSample:   startSample,
		LengthSamples: lengthSamples,
		PPQ:           DefaultPPQ,
		Notes:         []Note{},
	}
}

// EndSample returns the timeline position just past the clip
func (c *Clip) EndSample() uint64 {
	return c.StartSample + c.LengthSamples
}

// AddNote inserts a note after any notes with the same or earlier start
func (c *Clip) AddNote(n Note) {
	i := slices.IndexFunc(c.Notes, func(o Note) bool { return o.StartTick > n.StartTick })
	if i < 0 {
		i = len(c.Notes)
	}
	c.Notes = slices.Insert(c.Notes, i, n)
}

// RemoveNote deletes the note at index i
func (c *Clip) RemoveNote(i int) (Note, bool) {
	if i < 0 || i >= len(c.Notes) {
		return Note{}, false
	}
	n := c.Notes[i]
	c.Notes = slices.Delete(c.Notes, i, i+1)
	return n, true
}

// Events returns the note-ons and note-offs that fall inside
// [bufferStart, bufferStart+frames). Offsets are relative to bufferStart
// plus baseOffset; the channel is 0.
func (c *Clip) Events(bufferStart uint64, frames uint32, bpm float64, sampleRate uint32, baseOffset uint32) []midi.Event {
	bufferEnd := bufferStart + uint64(frames)
	if bufferEnd <= c.StartSample || bufferStart >= c.EndSample() {
		return nil
	}

	perTick := fx.SamplesPerTick(float64(sampleRate), bpm, c.PPQ)

	var events []midi.Event
	for _, n := range c.Notes {
		start := c.StartSample + uint64(float64(n.StartTick)*perTick)
		end := start + uint64(float64(n.DurationTicks)*perTick)

		if start >= bufferStart && start < bufferEnd {
			events = append(events, midi.Event{
				Pitch:    n.Pitch,
				Velocity: n.Velocity,
				Offset:   baseOffset + uint32(start-bufferStart),
				NoteOn:   true,
			})
		}
		if end >= bufferStart && end < bufferEnd {
			events = append(events, midi.Event{
				Pitch:    n.Pitch,
				Velocity: noteOffVelocity,
				Offset:   baseOffset + uint32(end-bufferStart),
			})
		}
	}
	return events
}
