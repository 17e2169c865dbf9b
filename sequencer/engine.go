package sequencer

import (
	"cmp"
	"slices"
	"sync"

	"go-midifx/debug"
	"go-midifx/midi"
)

// Output is one track's processed events for a block
type Output struct {
	Track   TrackID
	Channel uint8 // 1-16
	Events  []midi.Event
}

// Engine owns the transport, the tracks and their effect chains. Every
// access goes through its mutex, so block processing and edits from the
// UI never overlap.
type Engine struct {
	mu        sync.Mutex
	transport Transport
	tracks    []*Track
	nextTrack TrackID
	nextClip  ClipID
}

// NewEngine creates an engine with no tracks
func NewEngine(sampleRate uint32, bpm float64) *Engine {
	return &Engine{
		transport: NewTransport(sampleRate, bpm),
		tracks:    []*Track{},
		nextTrack: 1,
		nextClip:  1,
	}
}

// AddTrack creates a track and returns its id
func (e *Engine) AddTrack(name string, channel uint8) TrackID {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextTrack
	e.nextTrack++
	e.tracks = append(e.tracks, NewTrack(id, name, channel))
	debug.Log("engine", "add track id=%d name=%q ch=%d", id, name, channel)
	return id
}

// FirstTrack returns the id of the first track without copying it
func (e *Engine) FirstTrack() (TrackID, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.tracks) == 0 {
		return 0, false
	}
	return e.tracks[0].ID, true
}

// RemoveTrack deletes a track and its chain
func (e *Engine) RemoveTrack(id TrackID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := slices.IndexFunc(e.tracks, func(t *Track) bool { return t.ID == id })
	if i < 0 {
		return trackNotFound(id)
	}
	e.tracks = slices.Delete(e.tracks, i, i+1)
	debug.Log("engine", "remove track id=%d", id)
	return nil
}

// find expects mu to be held
func (e *Engine) find(id TrackID) (*Track, error) {
	for _, t := range e.tracks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, trackNotFound(id)
}

// Track returns a copy of one track
func (e *Engine) Track(id TrackID) (*Track, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.find(id)
	if err != nil {
		return nil, err
	}
	return t.Clone()
}

// Tracks returns copies of every track in order
func (e *Engine) Tracks() []*Track {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*Track, 0, len(e.tracks))
	for _, t := range e.tracks {
		c, err := t.Clone()
		if err != nil {
			debug.Log("engine", "clone track %d: %v", t.ID, err)
			continue
		}
		out = append(out, c)
	}
	return out
}

// WithTrack runs fn on the live track while holding the engine lock.
// fn must not call back into the engine.
func (e *Engine) WithTrack(id TrackID, fn func(*Track) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.find(id)
	if err != nil {
		return err
	}
	return fn(t)
}

// AddClip assigns the clip a fresh id and places it on a track
func (e *Engine) AddClip(track TrackID, c *Clip) (ClipID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.find(track)
	if err != nil {
		return 0, err
	}
	c.ID = e.nextClip
	e.nextClip++
	if c.PPQ == 0 {
		c.PPQ = DefaultPPQ
	}
	t.AddClip(c)
	return c.ID, nil
}

// RemoveClip deletes a clip from a track
func (e *Engine) RemoveClip(track TrackID, clip ClipID) error {
	return e.WithTrack(track, func(t *Track) error {
		_, err := t.RemoveClip(clip)
		return err
	})
}

// SetTempo sets the BPM, clamped to [MinTempo, MaxTempo]
func (e *Engine) SetTempo(bpm float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.transport.BPM = clampTempo(bpm)
	return e.transport.BPM
}

// Transport returns a copy of the transport state
func (e *Engine) Transport() Transport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transport
}

// Play starts playback
func (e *Engine) Play() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.transport.Play()
}

// Stop halts playback and rewinds
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.transport.Stop()
}

// TogglePlay flips between playing and stopped and returns the new state
func (e *Engine) TogglePlay() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.transport.Playing {
		e.transport.Stop()
	} else {
		e.transport.Play()
	}
	return e.transport.Playing
}

// SetLoop sets the loop region in samples
func (e *Engine) SetLoop(start, end uint64, enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.transport.LoopStart = start
	e.transport.LoopEnd = end
	e.transport.LoopEnabled = enabled
}

// ProcessBlock renders the next block of frames: clip events for every
// audible track run through that track's chain, then the playhead
// advances. Returns nil while stopped.
func (e *Engine) ProcessBlock(frames uint32) []Output {
	e.mu.Lock()
	defer e.mu.Unlock()

	tr := &e.transport
	if !tr.Playing || frames == 0 {
		return nil
	}

	spans := tr.spans(frames)
	solo := slices.ContainsFunc(e.tracks, func(t *Track) bool { return t.Solo })

	var out []Output
	for _, t := range e.tracks {
		if t.Muted || (solo && !t.Solo) {
			continue
		}

		var raw []midi.Event
		for _, c := range t.Clips {
			for _, s := range spans {
				raw = append(raw, c.Events(s.start, s.frames, tr.BPM, tr.SampleRate, s.base)...)
			}
		}
		slices.SortStableFunc(raw, func(a, b midi.Event) int { return cmp.Compare(a.Offset, b.Offset) })
		for i := range raw {
			raw[i].Channel = t.Channel - 1
		}

		// The chain runs even on empty input: held arpeggios keep playing
		events := t.Chain.Process(raw, float64(tr.SampleRate), tr.BPM)
		if len(events) > 0 {
			out = append(out, Output{Track: t.ID, Channel: t.Channel, Events: events})
		}
	}

	debug.LogEvery(500, "engine", "block pos=%d frames=%d outputs=%d", tr.Position, frames, len(out))
	tr.Advance(frames)
	return out
}

// ProcessLive runs live input through one track's chain at the current
// tempo. Events are moved to the track's channel.
func (e *Engine) ProcessLive(id TrackID, events []midi.Event) ([]midi.Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.find(id)
	if err != nil {
		return nil, err
	}

	in := midi.Clone(events)
	for i := range in {
		in[i].Channel = t.Channel - 1
	}
	return t.Chain.Process(in, float64(e.transport.SampleRate), e.transport.BPM), nil
}
