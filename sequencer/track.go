package sequencer

import (
	"encoding/json"
	"slices"

	"go-midifx/fx"
)

// TrackID identifies a track within an engine
type TrackID uint64

// Track is one MIDI lane: clips feeding an effect chain on one channel
type Track struct {
	ID      TrackID   `json:"id"`
	Name    string    `json:"name"`
	Channel uint8     `json:"channel"` // MIDI output channel (1-16)
	Muted   bool      `json:"muted"`
	Solo    bool      `json:"solo"`
	Clips   []*Clip   `json:"clips"`
	Chain   *fx.Chain `json:"chain"`
}

// NewTrack creates a track with an empty chain
func NewTrack(id TrackID, name string, channel uint8) *Track {
	return &Track{
		ID:      id,
		Name:    name,
		Channel: clampChannel(channel),
		Clips:   []*Clip{},
		Chain:   fx.NewChain(),
	}
}

func clampChannel(ch uint8) uint8 {
	if ch < 1 {
		return 1
	}
	if ch > 16 {
		return 16
	}
	return ch
}

// AddClip appends a clip
func (t *Track) AddClip(c *Clip) {
	t.Clips = append(t.Clips, c)
}

// RemoveClip deletes the clip with the given id
func (t *Track) RemoveClip(id ClipID) (*Clip, error) {
	i := slices.IndexFunc(t.Clips, func(c *Clip) bool { return c.ID == id })
	if i < 0 {
		return nil, clipNotFound(id)
	}
	c := t.Clips[i]
	t.Clips = slices.Delete(t.Clips, i, i+1)
	return c, nil
}

// Clip returns the clip with the given id
func (t *Track) Clip(id ClipID) (*Clip, error) {
	for _, c := range t.Clips {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, clipNotFound(id)
}

// Clone returns a deep copy, including chain generator state
func (t *Track) Clone() (*Track, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	out := &Track{}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UnmarshalJSON fills defaults that older saves may lack
func (t *Track) UnmarshalJSON(data []byte) error {
	type plain Track
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Chain == nil {
		p.Chain = fx.NewChain()
	}
	if p.Clips == nil {
		p.Clips = []*Clip{}
	}
	p.Channel = clampChannel(p.Channel)
	*t = Track(p)
	return nil
}
