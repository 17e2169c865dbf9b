package sequencer

import "encoding/json"

// State is the persisted form of an engine
type State struct {
	Transport Transport `json:"transport"`
	NextTrack TrackID   `json:"nextTrack"`
	NextClip  ClipID    `json:"nextClip"`
	Tracks    []*Track  `json:"tracks"`
}

// MarshalJSON serializes tracks, chains and transport settings
func (e *Engine) MarshalJSON() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return json.Marshal(State{
		Transport: e.transport,
		NextTrack: e.nextTrack,
		NextClip:  e.nextClip,
		Tracks:    e.tracks,
	})
}

// UnmarshalJSON replaces the engine contents. Playback is stopped and the
// playhead rewound.
func (e *Engine) UnmarshalJSON(data []byte) error {
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}

	// Ids must stay ahead of anything loaded
	for _, t := range st.Tracks {
		st.NextTrack = max(st.NextTrack, t.ID+1)
		for _, c := range t.Clips {
			st.NextClip = max(st.NextClip, c.ID+1)
		}
	}
	if st.Tracks == nil {
		st.Tracks = []*Track{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	sampleRate := st.Transport.SampleRate
	if sampleRate == 0 {
		sampleRate = e.transport.SampleRate
	}
	tr := NewTransport(sampleRate, st.Transport.BPM)
	tr.LoopEnabled = st.Transport.LoopEnabled
	tr.LoopStart = st.Transport.LoopStart
	tr.LoopEnd = st.Transport.LoopEnd

	e.transport = tr
	e.tracks = st.Tracks
	e.nextTrack = max(st.NextTrack, 1)
	e.nextClip = max(st.NextClip, 1)
	return nil
}
