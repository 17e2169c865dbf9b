package fx

import (
	"encoding/json"
	"fmt"
)

// seeded is implemented by effects that own a generator
type seeded interface {
	RNG() *RNG
}

type effectState struct {
	Type   string  `json:"type"`
	Bypass bool    `json:"bypass"`
	Params []Param `json:"params"`
	RNG    *uint64 `json:"rng,omitempty"`
	Held   []uint8 `json:"held,omitempty"`
}

type chainState struct {
	BypassAll bool              `json:"bypass_all"`
	Effects   []json.RawMessage `json:"effects"`
}

func snapshot(e Effect) effectState {
	st := effectState{
		Type:   e.Name(),
		Bypass: e.Bypassed(),
		Params: e.Params(),
	}
	if s, ok := e.(seeded); ok {
		state := s.RNG().State()
		st.RNG = &state
	}
	if a, ok := e.(*Arpeggiator); ok {
		st.Held = a.Held()
	}
	return st
}

func restore(st effectState) (Effect, error) {
	kind, err := ParseKind(st.Type)
	if err != nil {
		return nil, err
	}
	e, err := New(kind)
	if err != nil {
		return nil, err
	}

	e.SetBypass(st.Bypass)
	// Unknown names are skipped, values are clamped
	for _, p := range st.Params {
		e.SetParam(p.Name, p.Value)
	}
	if st.RNG != nil {
		if s, ok := e.(seeded); ok {
			s.RNG().Seed(*st.RNG)
		}
	}
	if a, ok := e.(*Arpeggiator); ok {
		a.setHeld(st.Held)
	}
	return e, nil
}

// MarshalEffect serializes an effect's full state
func MarshalEffect(e Effect) ([]byte, error) {
	return json.Marshal(snapshot(e))
}

// UnmarshalEffect rebuilds an effect from MarshalEffect output
func UnmarshalEffect(data []byte) (Effect, error) {
	var st effectState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	return restore(st)
}

// MarshalJSON serializes the chain in order
func (c *Chain) MarshalJSON() ([]byte, error) {
	st := chainState{
		BypassAll: c.bypassAll,
		Effects:   make([]json.RawMessage, 0, len(c.effects)),
	}
	for _, e := range c.effects {
		data, err := MarshalEffect(e)
		if err != nil {
			return nil, err
		}
		st.Effects = append(st.Effects, data)
	}
	return json.Marshal(st)
}

// UnmarshalJSON replaces the chain with the serialized one
func (c *Chain) UnmarshalJSON(data []byte) error {
	var st chainState
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	if len(st.Effects) > MaxEffects {
		return fmt.Errorf("%w: %d effects", ErrChainFull, len(st.Effects))
	}

	effects := make([]Effect, 0, len(st.Effects))
	for i, raw := range st.Effects {
		e, err := UnmarshalEffect(raw)
		if err != nil {
			return fmt.Errorf("effect %d: %w", i, err)
		}
		effects = append(effects, e)
	}

	c.effects = effects
	c.bypassAll = st.BypassAll
	return nil
}
