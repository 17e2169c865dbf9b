// Package fx implements the MIDI effects pipeline: tempo-aware transforms
// over the note events of one processing block, and the chain that runs
// them in series.
package fx

import "go-midifx/midi"

// Effect is one stage of a Chain
type Effect interface {
	Name() string
	Kind() Kind

	// Parameters (GUI introspection and edits)
	Params() []Param
	Param(name string) (Param, bool)
	SetParam(name string, value float64) bool

	Bypassed() bool
	SetBypass(bypass bool)

	// Process transforms one block. sampleRate is in Hz, bpm in beats per
	// minute. The input slice is never modified.
	Process(events []midi.Event, sampleRate, bpm float64) []midi.Event
}

// transformer is the effect-specific part of Process
type transformer interface {
	transform(events []midi.Event, sampleRate, bpm float64) []midi.Event
}

// unit carries the state every effect shares and implements Effect on top
// of the embedding type's transform. Bypass is enforced here and nowhere
// else.
type unit struct {
	kind   Kind
	params []Param
	bypass bool
	self   transformer
}

func newUnit(kind Kind, self transformer, params ...Param) unit {
	return unit{kind: kind, params: params, self: self}
}

func (u *unit) Name() string { return u.kind.String() }
func (u *unit) Kind() Kind   { return u.kind }

func (u *unit) Params() []Param {
	out := make([]Param, len(u.params))
	copy(out, u.params)
	return out
}

func (u *unit) Param(name string) (Param, bool) {
	for _, p := range u.params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// SetParam clamps value into the parameter range. Unknown names are
// ignored and reported false.
func (u *unit) SetParam(name string, value float64) bool {
	for i := range u.params {
		if u.params[i].Name == name {
			u.params[i].Value = u.params[i].Clamp(value)
			return true
		}
	}
	return false
}

func (u *unit) Bypassed() bool        { return u.bypass }
func (u *unit) SetBypass(bypass bool) { u.bypass = bypass }

func (u *unit) Process(events []midi.Event, sampleRate, bpm float64) []midi.Event {
	if u.bypass {
		return events
	}
	return u.self.transform(events, sampleRate, bpm)
}

// value reads a parameter by declaration index
func (u *unit) value(i int) float64 {
	return u.params[i].Value
}

func clampPitch(p int) uint8 {
	return uint8(clampInt(p, int(midi.MinPitch), int(midi.MaxPitch)))
}

func clampVelocity(v int) uint8 {
	return uint8(clampInt(v, int(midi.MinVelocity), int(midi.MaxVelocity)))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// floorOffset applies the floor-at-zero policy to a shifted offset
func floorOffset(v int64) uint32 {
	if v < 0 {
		return 0
	}
	if v > int64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(v)
}
